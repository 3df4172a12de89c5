package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	FindWeeklyByProviderAndWeekday(ctx context.Context, providerID string, weekday time.Weekday) ([]domain.BookingRule, error)
	FindSpecificByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]domain.BookingRule, error)
}

// ExceptionRepository интерфейс репозитория исключений из расписания
type ExceptionRepository interface {
	FindByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]domain.BookingException, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
