package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking бронирование — подтверждённая или завершённая запись клиента
// к провайдеру на интервал [StartAt, EndAt). Все timestamps в UTC.
//
// Инвариант: два бронирования одного провайдера со статусом confirmed
// никогда не пересекаются интервалами. Гарантируется на этапе admission
// (usecase create_booking + сериализуемая транзакция).
type Booking struct {
	ID         string
	ProviderID string
	ClientID   string
	StartAt    time.Time
	EndAt      time.Time
	Status     BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed возвращает true, если бронирование активно (confirmed)
// Только такие бронирования участвуют в проверках пересечений и квот
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled возвращает true, если бронирование можно отменить
// Переходы из терминальных статусов запрещены
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal возвращает true для конечных статусов
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusConfirmed
}

// Overlaps проверяет пересечение бронирования с интервалом [start, end)
// Граничащие интервалы пересечением не считаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return timeutil.Overlaps(b.StartAt, b.EndAt, start, end)
}

// DurationMinutes длительность бронирования в минутах
func (b *Booking) DurationMinutes() int {
	return timeutil.DurationMinutes(b.StartAt, b.EndAt)
}

// Date календарный день бронирования (UTC, по времени начала)
func (b *Booking) Date() time.Time {
	return timeutil.DateOnly(b.StartAt)
}

// ValidStatusTransition проверяет допустимость перехода статусов.
// Допустимы только одно-направленные переходы из confirmed.
func ValidStatusTransition(from, to BookingStatus) bool {
	if from != StatusConfirmed {
		return false
	}
	switch to {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// ProviderBookingsFilter фильтр выборки бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      string
	ClientID        *string        // опционально: только бронирования конкретного клиента
	StartDate       *time.Time     // начало периода (включительно), опционально
	EndDate         *time.Time     // конец периода (включительно), опционально
	Status          *BookingStatus // фильтр по статусу, опционально
	IncludeTerminal bool           // включать ли cancelled/completed/no_show
}
