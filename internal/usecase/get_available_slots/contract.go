package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AvailabilityService интерфейс сервиса расчёта доступности
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, providerID string, date time.Time) ([]domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
