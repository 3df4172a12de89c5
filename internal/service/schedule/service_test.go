package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// --- fakes ---

type memRuleRepo struct {
	rules map[string]domain.BookingRule
}

func newMemRuleRepo() *memRuleRepo {
	return &memRuleRepo{rules: make(map[string]domain.BookingRule)}
}

func (m *memRuleRepo) Create(_ context.Context, rule domain.BookingRule) (domain.BookingRule, error) {
	m.rules[rule.RuleID()] = rule
	return rule, nil
}

func (m *memRuleRepo) GetByID(_ context.Context, id string) (domain.BookingRule, error) {
	rule, ok := m.rules[id]
	if !ok {
		return nil, ruleRepo.ErrRuleNotFound
	}
	return rule, nil
}

func (m *memRuleRepo) GetAllByProvider(_ context.Context, providerID string) ([]domain.BookingRule, error) {
	out := make([]domain.BookingRule, 0)
	for _, r := range m.rules {
		if r.Provider() == providerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuleRepo) Update(_ context.Context, rule domain.BookingRule) (domain.BookingRule, error) {
	if _, ok := m.rules[rule.RuleID()]; !ok {
		return nil, ruleRepo.ErrRuleNotFound
	}
	m.rules[rule.RuleID()] = rule
	return rule, nil
}

func (m *memRuleRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := m.rules[id]; !ok {
		return ruleRepo.ErrRuleNotFound
	}
	delete(m.rules, id)
	return nil
}

type memExceptionRepo struct {
	exceptions map[string]domain.BookingException
}

func newMemExceptionRepo() *memExceptionRepo {
	return &memExceptionRepo{exceptions: make(map[string]domain.BookingException)}
}

func (m *memExceptionRepo) Create(_ context.Context, exc domain.BookingException) (domain.BookingException, error) {
	m.exceptions[exc.ExceptionID()] = exc
	return exc, nil
}

func (m *memExceptionRepo) GetByID(_ context.Context, id string) (domain.BookingException, error) {
	exc, ok := m.exceptions[id]
	if !ok {
		return nil, exceptionRepo.ErrExceptionNotFound
	}
	return exc, nil
}

func (m *memExceptionRepo) GetAllByProvider(_ context.Context, providerID string) ([]domain.BookingException, error) {
	out := make([]domain.BookingException, 0)
	for _, e := range m.exceptions {
		if e.Provider() == providerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memExceptionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.exceptions[id]; !ok {
		return exceptionRepo.ErrExceptionNotFound
	}
	delete(m.exceptions, id)
	return nil
}

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("%s_%d", g.prefix, g.n)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestService() *Service {
	return NewService(
		newMemRuleRepo(),
		newMemExceptionRepo(),
		&seqIDGenerator{prefix: "brl"},
		&seqIDGenerator{prefix: "bex"},
		nopLogger{},
	)
}

func weeklyRequest() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		ProviderID:          "prov_1",
		Kind:                "weekly",
		Weekday:             ptr.Ptr(2),
		StartTime:           "09:00",
		EndTime:             "18:00",
		SlotDurationMinutes: 60,
	}
}

// --- tests ---

func TestCreateRule_Weekly(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CreateRule(context.Background(), weeklyRequest())
	require.NoError(t, err)
	assert.Equal(t, "brl_1", resp.ID)
	assert.Equal(t, "weekly", resp.Kind)
	require.NotNil(t, resp.Weekday)
	assert.Equal(t, 2, *resp.Weekday)
	assert.Nil(t, resp.Date)
}

func TestCreateRule_SpecificDate(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CreateRule(context.Background(), &models.CreateRuleRequest{
		ProviderID:          "prov_1",
		Kind:                "specific_date",
		Date:                ptr.Ptr("2026-09-01"),
		StartTime:           "10:00",
		EndTime:             "14:00",
		SlotDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "specific_date", resp.Kind)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-09-01", *resp.Date)
	assert.Nil(t, resp.Weekday)
}

func TestCreateRule_Validation(t *testing.T) {
	svc := newTestService()

	cases := []struct {
		name   string
		mutate func(*models.CreateRuleRequest)
	}{
		{"missing provider", func(r *models.CreateRuleRequest) { r.ProviderID = "" }},
		{"unknown kind", func(r *models.CreateRuleRequest) { r.Kind = "monthly" }},
		{"weekly without weekday", func(r *models.CreateRuleRequest) { r.Weekday = nil }},
		{"weekday out of range", func(r *models.CreateRuleRequest) { r.Weekday = ptr.Ptr(7) }},
		{"start after end", func(r *models.CreateRuleRequest) { r.StartTime = "19:00" }},
		{"bad time format", func(r *models.CreateRuleRequest) { r.StartTime = "9am" }},
		{"slot too short", func(r *models.CreateRuleRequest) { r.SlotDurationMinutes = 1 }},
		{"slot too long", func(r *models.CreateRuleRequest) { r.SlotDurationMinutes = 600 }},
		{"negative quota", func(r *models.CreateRuleRequest) { r.MaxBookingsPerDay = ptr.Ptr(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := weeklyRequest()
			tc.mutate(req)
			_, err := svc.CreateRule(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateRule(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateRule(context.Background(), weeklyRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateRule(context.Background(), created.ID, &models.UpdateRuleRequest{
		EndTime:           ptr.Ptr("20:00"),
		MaxBookingsPerDay: ptr.Ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "20:00", updated.EndTime)
	assert.Equal(t, "09:00", updated.StartTime)
	require.NotNil(t, updated.MaxBookingsPerDay)
	assert.Equal(t, 5, *updated.MaxBookingsPerDay)

	// Некорректное окно после обновления отклоняется
	_, err = svc.UpdateRule(context.Background(), created.ID, &models.UpdateRuleRequest{
		EndTime: ptr.Ptr("08:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateRule(context.Background(), "brl_missing", &models.UpdateRuleRequest{})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestDeleteRule(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateRule(context.Background(), weeklyRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteRule(context.Background(), created.ID), ErrRuleNotFound)

	_, err = svc.GetRule(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestCreateException_Block(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID: "prov_1",
		Kind:       "block",
		Date:       "2026-09-01",
		Reason:     ptr.Ptr("отпуск"),
	})
	require.NoError(t, err)
	assert.Equal(t, "block", resp.Kind)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Nil(t, resp.StartTime)
}

func TestCreateException_Override(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID:          "prov_1",
		Kind:                "override",
		Date:                "2026-09-01",
		StartTime:           ptr.Ptr("12:00"),
		EndTime:             ptr.Ptr("16:00"),
		SlotDurationMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "override", resp.Kind)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "12:00", *resp.StartTime)
}

func TestCreateException_Validation(t *testing.T) {
	svc := newTestService()

	// Override без окна
	_, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID: "prov_1",
		Kind:       "override",
		Date:       "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Некорректная дата
	_, err = svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID: "prov_1",
		Kind:       "block",
		Date:       "01.09.2026",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Неизвестный вид
	_, err = svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID: "prov_1",
		Kind:       "holiday",
		Date:       "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteException(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreateException(context.Background(), &models.CreateExceptionRequest{
		ProviderID: "prov_1",
		Kind:       "block",
		Date:       "2026-09-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteException(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteException(context.Background(), created.ID), ErrExceptionNotFound)
}

func TestListRulesAndExceptions(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateRule(context.Background(), weeklyRequest())
	require.NoError(t, err)

	other := weeklyRequest()
	other.ProviderID = "prov_2"
	_, err = svc.CreateRule(context.Background(), other)
	require.NoError(t, err)

	rules, err := svc.ListRules(context.Background(), "prov_1")
	require.NoError(t, err)
	assert.Equal(t, 1, rules.Total)

	_, err = svc.ListRules(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	exceptions, err := svc.ListExceptions(context.Background(), "prov_1")
	require.NoError(t, err)
	assert.Equal(t, 0, exceptions.Total)
}
