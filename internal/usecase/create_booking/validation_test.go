package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	testDay = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	testNow = testDay.Add(8 * time.Hour) // 08:00 того же дня
)

func testWindow(slotMinutes int) domain.ResolvedWindow {
	return domain.ResolvedWindow{
		Window: domain.Window{
			StartTime:           types.TimeString("09:00"),
			EndTime:             types.TimeString("18:00"),
			SlotDurationMinutes: slotMinutes,
		},
		Source: domain.SourceWeeklyRule,
	}
}

func TestValidateBooking_InvalidTimeRange(t *testing.T) {
	start := testDay.Add(10 * time.Hour)
	end := testDay.Add(9 * time.Hour)

	err := validateBooking(start, end, testNow, testWindow(60))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	err = validateBooking(start, start, testNow, testWindow(60))
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestValidateBooking_InPast(t *testing.T) {
	start := testDay.Add(6 * time.Hour)
	end := testDay.Add(7 * time.Hour)

	err := validateBooking(start, end, testNow, testWindow(60))
	assert.ErrorIs(t, err, ErrBookingInPast)
}

func TestValidateBooking_TooClose(t *testing.T) {
	resolved := testWindow(60)
	resolved.Constraints.MinAdvanceMinutes = ptr.Ptr(120)

	// Старт через 60 минут при требуемых 120
	start := testNow.Add(time.Hour)
	end := start.Add(time.Hour)

	err := validateBooking(start, end, testNow, resolved)
	assert.ErrorIs(t, err, ErrBookingTooClose)

	// Ровно 120 минут — проходит
	start = testNow.Add(2 * time.Hour)
	end = start.Add(time.Hour)
	assert.NoError(t, validateBooking(start, end, testNow, resolved))
}

func TestValidateBooking_ExceedsMaxDuration(t *testing.T) {
	resolved := testWindow(60)
	resolved.Constraints.MaxDurationMinutes = ptr.Ptr(60)

	start := testDay.Add(10 * time.Hour)
	end := start.Add(2 * time.Hour)

	err := validateBooking(start, end, testNow, resolved)
	assert.ErrorIs(t, err, ErrBookingExceedsMaxDuration)
}

func TestValidateBooking_MisalignedDuration(t *testing.T) {
	start := testDay.Add(10 * time.Hour)
	end := start.Add(90 * time.Minute)

	err := validateBooking(start, end, testNow, testWindow(60))
	assert.ErrorIs(t, err, ErrBookingInvalidDurationForSlot)
}

func TestValidateBooking_MultipleOfSlotAllowed(t *testing.T) {
	// Длительность в два слота валидна
	start := testDay.Add(10 * time.Hour)
	end := start.Add(2 * time.Hour)

	assert.NoError(t, validateBooking(start, end, testNow, testWindow(60)))
}

func TestValidateBooking_OrderIsFixed(t *testing.T) {
	// Интервал одновременно в прошлом и с некратной длительностью:
	// побеждает более ранняя проверка
	start := testDay.Add(5 * time.Hour)
	end := start.Add(90 * time.Minute)

	err := validateBooking(start, end, testNow, testWindow(60))
	assert.ErrorIs(t, err, ErrBookingInPast)
	assert.NotErrorIs(t, err, ErrBookingInvalidDurationForSlot)
}

func TestValidateWithinWindow(t *testing.T) {
	window := testWindow(60).Window

	// Внутри окна
	assert.NoError(t, validateWithinWindow(testDay.Add(9*time.Hour), testDay.Add(10*time.Hour), window))

	// Раньше начала окна
	err := validateWithinWindow(testDay.Add(8*time.Hour), testDay.Add(9*time.Hour), window)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Позже конца окна
	err = validateWithinWindow(testDay.Add(17*time.Hour+30*time.Minute), testDay.Add(18*time.Hour+30*time.Minute), window)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestValidateRequest(t *testing.T) {
	valid := &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
	}
	assert.NoError(t, validateRequest(valid))

	missingProvider := *valid
	missingProvider.ProviderID = ""
	assert.ErrorIs(t, validateRequest(&missingProvider), ErrInvalidInput)

	missingClient := *valid
	missingClient.ClientID = ""
	assert.ErrorIs(t, validateRequest(&missingClient), ErrInvalidInput)

	crossesMidnight := *valid
	crossesMidnight.EndAt = testDay.AddDate(0, 0, 1).Add(time.Hour)
	assert.ErrorIs(t, validateRequest(&crossesMidnight), ErrInvalidInput)
}
