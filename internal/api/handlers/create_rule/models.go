package create_rule

import "github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"

// CreateRuleRequest тело запроса на создание правила доступности
type CreateRuleRequest struct {
	Kind                string  `json:"kind"`              // weekly | specific_date
	Weekday             *int    `json:"weekday,omitempty"` // 0 = воскресенье
	Date                *string `json:"date,omitempty"`    // YYYY-MM-DD
	StartTime           string  `json:"startTime"`         // HH:MM
	EndTime             string  `json:"endTime"`           // HH:MM
	SlotDurationMinutes int     `json:"slotDurationMinutes"`

	MinAdvanceMinutes          *int `json:"minAdvanceMinutes,omitempty"`
	MaxDurationMinutes         *int `json:"maxDurationMinutes,omitempty"`
	MaxBookingsPerDay          *int `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerClientPerDay *int `json:"maxBookingsPerClientPerDay,omitempty"`
}

// ToServiceRequest конвертирует HTTP-запрос в модель сервиса
func (r *CreateRuleRequest) ToServiceRequest(providerID string) *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		ProviderID:                 providerID,
		Kind:                       r.Kind,
		Weekday:                    r.Weekday,
		Date:                       r.Date,
		StartTime:                  r.StartTime,
		EndTime:                    r.EndTime,
		SlotDurationMinutes:        r.SlotDurationMinutes,
		MinAdvanceMinutes:          r.MinAdvanceMinutes,
		MaxDurationMinutes:         r.MaxDurationMinutes,
		MaxBookingsPerDay:          r.MaxBookingsPerDay,
		MaxBookingsPerClientPerDay: r.MaxBookingsPerClientPerDay,
	}
}
