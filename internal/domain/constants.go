package domain

// Форматы дат и времени на границах сервиса
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Бизнес-ограничения конфигурации расписания
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов

	MaxDaysAheadLimit = 365 // максимальный горизонт запроса доступных дней

	MaxCancellationReasonLength = 500
)

// QuotaStatuses статусы, учитываемые в проверках пересечений и квот.
// Завершённые и no_show бронирования квоты не расходуют —
// учитываются только confirmed.
var QuotaStatuses = []BookingStatus{
	StatusConfirmed,
}
