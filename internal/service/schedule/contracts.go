package schedule

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule domain.BookingRule) (domain.BookingRule, error)
	GetByID(ctx context.Context, id string) (domain.BookingRule, error)
	GetAllByProvider(ctx context.Context, providerID string) ([]domain.BookingRule, error)
	Update(ctx context.Context, rule domain.BookingRule) (domain.BookingRule, error)
	SoftDelete(ctx context.Context, id string) error
}

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	Create(ctx context.Context, exc domain.BookingException) (domain.BookingException, error)
	GetByID(ctx context.Context, id string) (domain.BookingException, error)
	GetAllByProvider(ctx context.Context, providerID string) ([]domain.BookingException, error)
	Delete(ctx context.Context, id string) error
}

// IDGenerator интерфейс генерации идентификаторов
type IDGenerator interface {
	NewID() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
