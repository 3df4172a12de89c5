package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// SlotResponse временной слот в HTTP-ответе
type SlotResponse struct {
	StartAt         string `json:"startAt"` // RFC3339
	EndAt           string `json:"endAt"`   // RFC3339
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Response HTTP response model
type Response struct {
	ProviderID string         `json:"providerId"`
	Date       string         `json:"date"` // YYYY-MM-DD
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *Response {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartAt:         s.StartAt.Format(time.RFC3339),
			EndAt:           s.EndAt.Format(time.RFC3339),
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}
	return &Response{
		ProviderID: resp.ProviderID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
