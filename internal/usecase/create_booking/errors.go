package create_booking

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда start_at >= end_at
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrBookingInPast возвращается при попытке забронировать время в прошлом
	ErrBookingInPast = errors.New("create_booking: booking is in the past")

	// ErrBookingTooClose возвращается при нарушении min_advance_minutes
	ErrBookingTooClose = errors.New("create_booking: booking is too close to now")

	// ErrBookingExceedsMaxDuration возвращается при превышении max_duration_minutes
	ErrBookingExceedsMaxDuration = errors.New("create_booking: booking exceeds max duration")

	// ErrBookingInvalidDurationForSlot возвращается, когда длительность
	// не кратна slot_duration_minutes окна
	ErrBookingInvalidDurationForSlot = errors.New("create_booking: booking duration is not aligned to slot duration")

	// ErrSlotNotAvailable возвращается, когда на дату нет окна доступности
	// либо запрошенный интервал выходит за его пределы
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrBookingOverlap возвращается, когда интервал пересекается
	// с существующим confirmed-бронированием
	ErrBookingOverlap = errors.New("create_booking: booking overlaps an existing booking")

	// ErrDailyBookingLimitExceeded возвращается при превышении max_bookings_per_day
	ErrDailyBookingLimitExceeded = errors.New("create_booking: daily booking limit exceeded")

	// ErrClientDailyBookingLimitExceeded возвращается при превышении
	// max_bookings_per_client_per_day
	ErrClientDailyBookingLimitExceeded = errors.New("create_booking: client daily booking limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
