package get_available_days

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailability struct {
	days       []time.Time
	err        error
	gotFrom    time.Time
	gotAhead   int
	gotProvide string
}

func (f *fakeAvailability) GetAvailableDays(_ context.Context, providerID string, from time.Time, daysAhead int) ([]time.Time, error) {
	f.gotProvide = providerID
	f.gotFrom = from
	f.gotAhead = daysAhead
	return f.days, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_DefaultsFromToToday(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fake := &fakeAvailability{days: []time.Time{day}}
	uc := NewUseCase(fake, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 9, 1, 8, 15, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: "prov-1", DaysAhead: 14})

	require.NoError(t, err)
	assert.Equal(t, day, fake.gotFrom)
	assert.Equal(t, 14, fake.gotAhead)
	assert.Equal(t, day, resp.FromDate)
	assert.Equal(t, []time.Time{day}, resp.Days)
}

func TestExecute_ExplicitFromDate(t *testing.T) {
	from := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	fake := &fakeAvailability{}
	uc := NewUseCase(fake, nopLogger{})

	withTime := time.Date(2026, 10, 5, 17, 45, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{ProviderID: "prov-1", FromDate: &withTime, DaysAhead: 7})

	require.NoError(t, err)
	// Время внутри дня отбрасывается
	assert.Equal(t, from, fake.gotFrom)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "", DaysAhead: 14})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "prov-1", DaysAhead: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "prov-1", DaysAhead: 400})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
