package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "полное совпадение",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 0), bEnd: at(11, 0),
			expected: true,
		},
		{
			name:   "частичное пересечение",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(10, 30), bEnd: at(11, 30),
			expected: true,
		},
		{
			name:   "вложенный интервал",
			aStart: at(10, 0), aEnd: at(12, 0),
			bStart: at(10, 30), bEnd: at(11, 0),
			expected: true,
		},
		{
			name:   "граничащие интервалы не пересекаются",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(11, 0), bEnd: at(12, 0),
			expected: false,
		},
		{
			name:   "непересекающиеся интервалы",
			aStart: at(10, 0), aEnd: at(11, 0),
			bStart: at(14, 0), bEnd: at(15, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 60, DurationMinutes(at(10, 0), at(11, 0)))
	assert.Equal(t, 90, DurationMinutes(at(10, 0), at(11, 30)))
	assert.Equal(t, 0, DurationMinutes(at(10, 0), at(10, 0)))
}

func TestDateOnly(t *testing.T) {
	day := DateOnly(at(15, 45))

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), day)
}

func TestDateOnly_NonUTC(t *testing.T) {
	// 2026-09-01 23:30 +03:00 — это 2026-09-01 20:30 UTC
	loc := time.FixedZone("MSK", 3*60*60)
	local := time.Date(2026, 9, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), DateOnly(local))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(at(0, 0), at(23, 59)))
	assert.False(t, SameDay(at(10, 0), at(10, 0).AddDate(0, 0, 1)))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(at(15, 45))

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), AddDays(at(15, 45), 7))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), AddDays(at(0, 0), 30))
}

func TestWeekdayOf(t *testing.T) {
	// 2026-09-01 — вторник
	assert.Equal(t, time.Tuesday, WeekdayOf(at(12, 0)))
}
