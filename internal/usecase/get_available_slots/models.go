package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID string    // ID провайдера
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID string    // ID провайдера
	Date       time.Time // Дата, на которую запрашивались слоты
	Slots      []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartAt         time.Time        // Начало слота (UTC)
	EndAt           time.Time        // Конец слота (UTC)
	StartTime       types.TimeString // Время начала ("10:00") для компактного отображения
	DurationMinutes int              // Длительность слота в минутах
}

// fromDomainSlots конвертирует доменные слоты в ответ
func fromDomainSlots(providerID string, date time.Time, slots []domain.Slot) *Response {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, Slot{
			StartAt:         s.StartAt,
			EndAt:           s.EndAt,
			StartTime:       types.NewTimeString(s.StartAt),
			DurationMinutes: s.DurationMinutes(),
		})
	}
	return &Response{
		ProviderID: providerID,
		Date:       date,
		Slots:      out,
	}
}
