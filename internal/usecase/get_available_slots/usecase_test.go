package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type fakeAvailability struct {
	slots   []domain.Slot
	err     error
	gotDate time.Time
}

func (f *fakeAvailability) GetAvailableSlots(_ context.Context, _ string, date time.Time) ([]domain.Slot, error) {
	f.gotDate = date
	return f.slots, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_MapsSlots(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	fake := &fakeAvailability{slots: []domain.Slot{
		{StartAt: start, EndAt: start.Add(30 * time.Minute)},
	}}
	uc := NewUseCase(fake, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		Date:       time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, start, resp.Slots[0].StartAt)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)
	// Дата нормализуется к полуночи UTC
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), fake.gotDate)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: "", Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: "prov-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceError(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{err: errors.New("db down")}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov-1",
		Date:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrInternal)
}
