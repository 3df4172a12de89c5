package get_available_days

import (
	"context"
	"time"
)

// AvailabilityService интерфейс сервиса расчёта доступности
type AvailabilityService interface {
	GetAvailableDays(ctx context.Context, providerID string, from time.Time, daysAhead int) ([]time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
