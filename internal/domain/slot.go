package domain

import "time"

// Slot дискретный бронируемый слот фиксированной длительности.
// Производное значение: не хранится в БД, пересчитывается на каждый запрос
// по текущему состоянию правил, исключений и бронирований.
type Slot struct {
	ProviderID string
	Date       time.Time // полночь UTC
	StartAt    time.Time
	EndAt      time.Time
}

// DurationMinutes длительность слота в минутах
func (s *Slot) DurationMinutes() int {
	return int(s.EndAt.Sub(s.StartAt).Minutes())
}
