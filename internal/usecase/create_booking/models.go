package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ProviderID string    // ID провайдера, чьё время бронируется
	ClientID   string    // ID клиента
	StartAt    time.Time // Начало интервала (UTC)
	EndAt      time.Time // Конец интервала (UTC), не включается
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string    // ID созданного бронирования
	ProviderID      string    // ID провайдера
	ClientID        string    // ID клиента
	StartAt         time.Time // Начало интервала
	EndAt           time.Time // Конец интервала
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
