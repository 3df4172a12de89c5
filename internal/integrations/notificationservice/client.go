package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const (
	kindConfirmation = "booking_confirmation"
	kindCancellation = "booking_cancellation"
)

// Client клиент для работы с NotificationService.
// Сервис уведомлений вспомогательный: при его недоступности применяется
// graceful degradation — операции с бронированиями продолжают работать.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет уведомление о создании бронирования
func (c *Client) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, notificationRequest{
		Kind:       kindConfirmation,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		StartAt:    booking.StartAt,
		EndAt:      booking.EndAt,
	})
}

// SendBookingCancellation отправляет уведомление об отмене бронирования
func (c *Client) SendBookingCancellation(ctx context.Context, booking *domain.Booking) error {
	return c.send(ctx, notificationRequest{
		Kind:       kindCancellation,
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		ClientID:   booking.ClientID,
		StartAt:    booking.StartAt,
		EndAt:      booking.EndAt,
		Reason:     booking.CancellationReason,
	})
}

func (c *Client) send(ctx context.Context, notification notificationRequest) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сервис недоступен — деградируем, не роняя основную операцию
		c.log.Warn("notificationservice: %s for booking id=%s not delivered: %v", notification.Kind, notification.BookingID, err)
		return fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		c.log.Warn("notificationservice: degraded, status=%d", resp.StatusCode)
		return fmt.Errorf("%w: status code %d", ErrServiceDegraded, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
