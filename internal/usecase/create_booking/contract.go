package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetConfirmedByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]*domain.Booking, error)
	GetConfirmedByProviderClientAndDate(ctx context.Context, providerID, clientID string, date time.Time) ([]*domain.Booking, error)
}

// AvailabilityResolver интерфейс сервиса разрешения доступности
type AvailabilityResolver interface {
	ResolveWindow(ctx context.Context, providerID string, date time.Time) (domain.ResolvedWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// IDGenerator интерфейс генерации идентификаторов бронирований
type IDGenerator interface {
	NewID() string
}

// EventProducer интерфейс публикации событий бронирований
type EventProducer interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// NotificationClient интерфейс клиента сервиса уведомлений
type NotificationClient interface {
	SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error
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
