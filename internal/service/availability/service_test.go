package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// --- fakes ---

type fakeRuleRepo struct {
	weekly   []domain.BookingRule
	specific []domain.BookingRule
}

func (f *fakeRuleRepo) FindWeeklyByProviderAndWeekday(_ context.Context, providerID string, weekday time.Weekday) ([]domain.BookingRule, error) {
	out := make([]domain.BookingRule, 0)
	for _, r := range f.weekly {
		if r.Provider() == providerID && r.(domain.WeeklyRule).Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) FindSpecificByProviderAndDate(_ context.Context, providerID string, date time.Time) ([]domain.BookingRule, error) {
	out := make([]domain.BookingRule, 0)
	for _, r := range f.specific {
		if r.Provider() == providerID && r.AppliesTo(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExceptionRepo struct {
	exceptions []domain.BookingException
}

func (f *fakeExceptionRepo) FindByProviderAndDate(_ context.Context, providerID string, date time.Time) ([]domain.BookingException, error) {
	out := make([]domain.BookingException, 0)
	for _, e := range f.exceptions {
		if e.Provider() == providerID && e.ExceptionDate().Equal(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetConfirmedByProviderAndDate(_ context.Context, providerID string, date time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.Status == domain.StatusConfirmed && b.StartAt.Year() == date.Year() && b.StartAt.YearDay() == date.YearDay() {
			out = append(out, b)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService(rules *fakeRuleRepo, exceptions *fakeExceptionRepo, bookings *fakeBookingRepo) *Service {
	if rules == nil {
		rules = &fakeRuleRepo{}
	}
	if exceptions == nil {
		exceptions = &fakeExceptionRepo{}
	}
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	return NewService(rules, exceptions, bookings, nopLogger{})
}

func weeklyRule(provider string, weekday time.Weekday, start, end string, slotMinutes int) domain.WeeklyRule {
	return domain.WeeklyRule{
		ID:                  "brl_weekly_" + start,
		ProviderID:          provider,
		Weekday:             weekday,
		StartTime:           types.TimeString(start),
		EndTime:             types.TimeString(end),
		SlotDurationMinutes: slotMinutes,
	}
}

// --- tests ---

// Вторник 2026-09-01
var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func TestGetAvailableSlots_WeeklyRule(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	svc := newTestService(rules, nil, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.Equal(t, testDate.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, testDate.Add(10*time.Hour), slots[0].EndAt)
	assert.Equal(t, testDate.Add(11*time.Hour), slots[2].StartAt)
	assert.Equal(t, testDate.Add(12*time.Hour), slots[2].EndAt)
}

func TestGetAvailableSlots_ExcludesBookedSlot(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			ID:         "book_1",
			ProviderID: "prov_1",
			ClientID:   "client_1",
			StartAt:    testDate.Add(10 * time.Hour),
			EndAt:      testDate.Add(11 * time.Hour),
			Status:     domain.StatusConfirmed,
		}},
	}
	svc := newTestService(rules, nil, bookings)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, testDate.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, testDate.Add(11*time.Hour), slots[1].StartAt)
}

func TestGetAvailableSlots_PartialOverlapExcludesSlot(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	// Бронирование 09:30-10:30 пересекает оба слота 09:00 и 10:00
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			ID:         "book_1",
			ProviderID: "prov_1",
			ClientID:   "client_1",
			StartAt:    testDate.Add(9*time.Hour + 30*time.Minute),
			EndAt:      testDate.Add(10*time.Hour + 30*time.Minute),
			Status:     domain.StatusConfirmed,
		}},
	}
	svc := newTestService(rules, nil, bookings)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, testDate.Add(11*time.Hour), slots[0].StartAt)
}

func TestGetAvailableSlots_BackToBackBookingDoesNotBlock(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "11:00", 60)},
	}
	// Бронирование заканчивается ровно в 10:00 — слот 10:00 свободен
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{{
			ID:         "book_1",
			ProviderID: "prov_1",
			ClientID:   "client_1",
			StartAt:    testDate.Add(9 * time.Hour),
			EndAt:      testDate.Add(10 * time.Hour),
			Status:     domain.StatusConfirmed,
		}},
	}
	svc := newTestService(rules, nil, bookings)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, testDate.Add(10*time.Hour), slots[0].StartAt)
}

func TestGetAvailableSlots_RemainderDropped(t *testing.T) {
	// Окно 09:00-10:30 при слоте 60 минут: только один слот, хвост 30 минут отброшен
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "10:30", 60)},
	}
	svc := newTestService(rules, nil, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, testDate.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, testDate.Add(10*time.Hour), slots[0].EndAt)
}

func TestGetAvailableSlots_BlockExceptionWins(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	exceptions := &fakeExceptionRepo{
		exceptions: []domain.BookingException{
			domain.OverrideException{
				ID:                  "bex_override",
				ProviderID:          "prov_1",
				Date:                testDate,
				StartTime:           types.TimeString("14:00"),
				EndTime:             types.TimeString("16:00"),
				SlotDurationMinutes: 60,
			},
			domain.BlockException{
				ID:         "bex_block",
				ProviderID: "prov_1",
				Date:       testDate,
				Reason:     ptr.Ptr("выходной"),
			},
		},
	}
	svc := newTestService(rules, exceptions, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_OverrideReplacesRuleWindow(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	exceptions := &fakeExceptionRepo{
		exceptions: []domain.BookingException{
			domain.OverrideException{
				ID:                  "bex_override",
				ProviderID:          "prov_1",
				Date:                testDate,
				StartTime:           types.TimeString("14:00"),
				EndTime:             types.TimeString("16:00"),
				SlotDurationMinutes: 120,
			},
		},
	}
	svc := newTestService(rules, exceptions, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, testDate.Add(14*time.Hour), slots[0].StartAt)
	assert.Equal(t, testDate.Add(16*time.Hour), slots[0].EndAt)
}

func TestGetAvailableSlots_SpecificDateBeatsWeekly(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
		specific: []domain.BookingRule{domain.SpecificDateRule{
			ID:                  "brl_specific",
			ProviderID:          "prov_1",
			Date:                testDate,
			StartTime:           types.TimeString("13:00"),
			EndTime:             types.TimeString("15:00"),
			SlotDurationMinutes: 60,
		}},
	}
	svc := newTestService(rules, nil, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, testDate.Add(13*time.Hour), slots[0].StartAt)
}

func TestGetAvailableSlots_UnknownProviderEmpty(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	slots, err := svc.GetAvailableSlots(context.Background(), "prov_missing", testDate)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_Idempotent(t *testing.T) {
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 30)},
	}
	svc := newTestService(rules, nil, nil)

	first, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	second, err := svc.GetAvailableSlots(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveWindow_ConflictingWeeklyRulesDeterministic(t *testing.T) {
	// Два weekly-правила на один день: берётся первое из упорядоченной выборки
	first := weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)
	second := weeklyRule("prov_1", time.Tuesday, "10:00", "18:00", 30)
	rules := &fakeRuleRepo{weekly: []domain.BookingRule{first, second}}
	svc := newTestService(rules, nil, nil)

	resolved, err := svc.ResolveWindow(context.Background(), "prov_1", testDate)
	require.NoError(t, err)
	assert.False(t, resolved.Blocked)
	assert.Equal(t, domain.SourceWeeklyRule, resolved.Source)
	assert.Equal(t, first.Window(), resolved.Window)
}

func TestGetAvailableDays(t *testing.T) {
	// Правила только на вторник: в двух неделях вперёд ровно два вторника
	rules := &fakeRuleRepo{
		weekly: []domain.BookingRule{weeklyRule("prov_1", time.Tuesday, "09:00", "12:00", 60)},
	}
	svc := newTestService(rules, nil, nil)

	days, err := svc.GetAvailableDays(context.Background(), "prov_1", testDate, 14)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, testDate, days[0])
	assert.Equal(t, testDate.AddDate(0, 0, 7), days[1])
}

func TestGetAvailableDays_RangeValidation(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.GetAvailableDays(context.Background(), "prov_1", testDate, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetAvailableDays(context.Background(), "prov_1", testDate, domain.MaxDaysAheadLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
