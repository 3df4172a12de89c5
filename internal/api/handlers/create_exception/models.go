package create_exception

import "github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"

// CreateExceptionRequest тело запроса на создание исключения
type CreateExceptionRequest struct {
	Kind                string  `json:"kind"` // block | override
	Date                string  `json:"date"` // YYYY-MM-DD
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Reason              *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP-запрос в модель сервиса
func (r *CreateExceptionRequest) ToServiceRequest(providerID string) *models.CreateExceptionRequest {
	return &models.CreateExceptionRequest{
		ProviderID:          providerID,
		Kind:                r.Kind,
		Date:                r.Date,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Reason:              r.Reason,
	}
}
