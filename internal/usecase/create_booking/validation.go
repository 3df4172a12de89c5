package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.ClientID == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.EndAt.IsZero() {
		return fmt.Errorf("%w: endAt is required", ErrInvalidInput)
	}

	// Окна доступности однодневные, бронирование через полночь невозможно
	if !timeutil.SameDay(req.StartAt, req.EndAt) {
		return fmt.Errorf("%w: booking must not cross midnight", ErrInvalidInput)
	}

	return nil
}

// validateBooking выполняет проверки интервала против разрешённого окна.
// Проверки чистые и выполняются строго в фиксированном порядке:
// первая неудавшаяся определяет ошибку, остальные не вычисляются.
func validateBooking(startAt, endAt, now time.Time, resolved domain.ResolvedWindow) error {
	// 1. Корректность диапазона
	if !startAt.Before(endAt) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange,
			startAt.Format(time.RFC3339), endAt.Format(time.RFC3339))
	}

	// 2. Не в прошлом
	if startAt.Before(now) || endAt.Before(now) {
		return ErrBookingInPast
	}

	// 3. Минимальный запас до начала
	if min := resolved.Constraints.MinAdvanceMinutes; min != nil {
		if timeutil.DurationMinutes(now, startAt) < *min {
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrBookingTooClose, *min)
		}
	}

	duration := timeutil.DurationMinutes(startAt, endAt)

	// 4. Максимальная длительность
	if max := resolved.Constraints.MaxDurationMinutes; max != nil {
		if duration > *max {
			return fmt.Errorf("%w: duration %d exceeds limit %d minutes", ErrBookingExceedsMaxDuration, duration, *max)
		}
	}

	// 5. Кратность длительности слоту
	if duration%resolved.Window.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: duration %d is not a multiple of %d minutes",
			ErrBookingInvalidDurationForSlot, duration, resolved.Window.SlotDurationMinutes)
	}

	return nil
}

// validateWithinWindow проверяет, что интервал лежит внутри разрешённого окна
func validateWithinWindow(startAt, endAt time.Time, window domain.Window) error {
	day := timeutil.DateOnly(startAt)
	windowStart := window.StartTime.AtDate(day)
	windowEnd := window.EndTime.AtDate(day)

	if startAt.Before(windowStart) || endAt.After(windowEnd) {
		return fmt.Errorf("%w: interval is outside the availability window %s-%s",
			ErrSlotNotAvailable, window.StartTime, window.EndTime)
	}

	return nil
}

// findOverlap возвращает первое confirmed-бронирование, пересекающее интервал
func findOverlap(startAt, endAt time.Time, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsConfirmed() {
			continue
		}
		if timeutil.Overlaps(startAt, endAt, booking.StartAt, booking.EndAt) {
			return booking
		}
	}
	return nil
}

// countConfirmed подсчитывает confirmed-бронирования (квоты расходуют только они)
func countConfirmed(bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if booking.IsConfirmed() {
			count++
		}
	}
	return count
}
