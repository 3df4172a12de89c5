package get_available_days

import "time"

// Request модель запроса на получение доступных дней
type Request struct {
	ProviderID string     // ID провайдера
	FromDate   *time.Time // Начало диапазона; nil — с сегодняшнего дня
	DaysAhead  int        // Глубина просмотра в днях
}

// Response модель ответа со списком доступных дней
type Response struct {
	ProviderID string      // ID провайдера
	FromDate   time.Time   // Начало диапазона
	DaysAhead  int         // Глубина просмотра
	Days       []time.Time // Даты хотя бы с одним свободным слотом
}
