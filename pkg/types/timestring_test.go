package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "валидное время", input: "10:30"},
		{name: "полночь", input: "00:00"},
		{name: "конец дня", input: "23:59"},
		{name: "часы вне диапазона", input: "24:00", wantErr: true},
		{name: "минуты вне диапазона", input: "10:60", wantErr: true},
		{name: "пустая строка", input: "", wantErr: true},
		{name: "мусор", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore(TimeString("10:30")))
	assert.False(t, TimeString("10:30").IsBefore(TimeString("10:30")))
	assert.True(t, TimeString("11:00").IsAfter(TimeString("10:30")))
	assert.Equal(t, 90, TimeString("10:00").MinutesUntil(TimeString("11:30")))
	assert.Equal(t, -30, TimeString("10:30").MinutesUntil(TimeString("10:00")))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	ts, err = TimeString("23:00").AddMinutes(59)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), ts)
}

func TestTimeString_AddMinutes_OutOfDayBounds(t *testing.T) {
	_, err := TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeString_AtDate(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	got := TimeString("10:30").AtDate(date)

	assert.Equal(t, time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30"))
	assert.Equal(t, TimeString("10:30"), ts)

	// Колонка TIME возвращает секунды
	require.NoError(t, ts.Scan("18:45:00"))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan([]byte("09:15")))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}

func TestTimeString_JSON(t *testing.T) {
	data, err := TimeString("10:30").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"10:30"`, string(data))

	var ts TimeString
	require.NoError(t, ts.UnmarshalJSON([]byte(`"18:00"`)))
	assert.Equal(t, TimeString("18:00"), ts)

	assert.Error(t, ts.UnmarshalJSON([]byte(`"bad"`)))
}
