package get_available_days

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableDays "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_days"
)

// Response HTTP response model
type Response struct {
	ProviderID string   `json:"providerId"`
	FromDate   string   `json:"fromDate"` // YYYY-MM-DD
	DaysAhead  int      `json:"daysAhead"`
	Days       []string `json:"days"` // даты YYYY-MM-DD с доступными слотами
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDays.Response) *Response {
	days := make([]string, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, d.Format(domain.DateFormat))
	}
	return &Response{
		ProviderID: resp.ProviderID,
		FromDate:   resp.FromDate.Format(domain.DateFormat),
		DaysAhead:  resp.DaysAhead,
		Days:       days,
	}
}
