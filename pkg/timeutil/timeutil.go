package timeutil

import "time"

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы, граничащие концами, НЕ считаются пересекающимися:
// [10:00, 11:00) и [11:00, 12:00) → false
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DurationMinutes возвращает длительность интервала в целых минутах (floor)
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start).Minutes())
}

// WeekdayOf возвращает день недели даты в UTC (Sunday = 0)
func WeekdayOf(date time.Time) time.Weekday {
	return date.UTC().Weekday()
}

// DateOnly обнуляет время, оставляя только дату (полночь UTC)
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному календарному дню (UTC)
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.UTC().Date()
	y2, m2, d2 := b.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayBounds возвращает границы календарного дня [start, end) в UTC
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := DateOnly(date)
	return start, start.AddDate(0, 0, 1)
}

// AddDays возвращает дату, сдвинутую на days дней вперед
func AddDays(date time.Time, days int) time.Time {
	return DateOnly(date).AddDate(0, 0, days)
}
