package notificationservice

import "time"

// notificationRequest запрос на отправку уведомления о бронировании
type notificationRequest struct {
	Kind       string    `json:"kind"` // booking_confirmation | booking_cancellation
	BookingID  string    `json:"booking_id"`
	ProviderID string    `json:"provider_id"`
	ClientID   string    `json:"client_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Reason     *string   `json:"reason,omitempty"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
