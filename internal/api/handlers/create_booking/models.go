package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID string `json:"providerId"`
	ClientID   string `json:"clientId"`
	StartAt    string `json:"startAt"` // RFC3339, например "2026-09-01T10:00:00Z"
	EndAt      string `json:"endAt"`   // RFC3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              string `json:"id"`
	ProviderID      string `json:"providerId"`
	ClientID        string `json:"clientId"`
	StartAt         string `json:"startAt"`
	EndAt           string `json:"endAt"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ProviderID: r.ProviderID,
		ClientID:   r.ClientID,
		StartAt:    startAt,
		EndAt:      endAt,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ProviderID:      resp.ProviderID,
		ClientID:        resp.ClientID,
		StartAt:         resp.StartAt.Format(time.RFC3339),
		EndAt:           resp.EndAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
