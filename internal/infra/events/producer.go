package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Типы публикуемых событий
const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BookingEvent полезная нагрузка события бронирования
type BookingEvent struct {
	EventType          string     `json:"eventType"`
	BookingID          string     `json:"bookingId"`
	ProviderID         string     `json:"providerId"`
	ClientID           string     `json:"clientId"`
	StartAt            time.Time  `json:"startAt"`
	EndAt              time.Time  `json:"endAt"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	OccurredAt         time.Time  `json:"occurredAt"`
}

// Producer публикует события жизненного цикла бронирований в Kafka.
// Публикация best-effort: ошибки логируются вызывающим и не влияют
// на результат операции.
type Producer struct {
	writer *kafka.Writer
	logger Logger
}

// NewProducer создает producer событий.
// brokers — строка вида "host1:9092,host2:9092".
func NewProducer(brokers, topic string, logger Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(splitBrokers(brokers)...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger,
	}
}

// BookingCreated публикует событие создания бронирования
func (p *Producer) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking)
}

// BookingCancelled публикует событие отмены бронирования
func (p *Producer) BookingCancelled(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingCancelled, booking)
}

// BookingStatusChanged публикует событие смены статуса
func (p *Producer) BookingStatusChanged(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, EventBookingStatusChanged, booking)
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

func (p *Producer) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	event := BookingEvent{
		EventType:          eventType,
		BookingID:          booking.ID,
		ProviderID:         booking.ProviderID,
		ClientID:           booking.ClientID,
		StartAt:            booking.StartAt,
		EndAt:              booking.EndAt,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		OccurredAt:         time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", eventType, err)
	}

	msg := kafka.Message{
		// Ключ — providerID: события одного провайдера попадают
		// в одну партицию и сохраняют порядок
		Key:   []byte(booking.ProviderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "event_id", Value: []byte(booking.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: write %s for booking %s: %w", eventType, booking.ID, err)
	}

	p.logger.Info("events: published %s for booking id=%s", eventType, booking.ID)
	return nil
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
