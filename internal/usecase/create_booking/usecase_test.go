package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// --- fakes ---

// memBookingRepo хранит бронирования в памяти
type memBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (m *memBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *booking
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.bookings = append(m.bookings, &stored)
	return &stored, nil
}

func (m *memBookingRepo) GetConfirmedByProviderAndDate(_ context.Context, providerID string, date time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.ProviderID == providerID && b.Status == domain.StatusConfirmed && timeutil.SameDay(b.StartAt, date) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memBookingRepo) GetConfirmedByProviderClientAndDate(_ context.Context, providerID, clientID string, date time.Time) ([]*domain.Booking, error) {
	all, _ := m.GetConfirmedByProviderAndDate(nil, providerID, date)
	out := make([]*domain.Booking, 0)
	for _, b := range all {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

// serialTxManager сериализует "транзакции" мьютексом — модель
// сериализуемой изоляции для конкурентных тестов
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeResolver struct {
	resolved domain.ResolvedWindow
}

func (f *fakeResolver) ResolveWindow(_ context.Context, _ string, _ time.Time) (domain.ResolvedWindow, error) {
	return f.resolved, nil
}

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "book_" + string(rune('a'+g.n-1))
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type recordingProducer struct {
	mu      sync.Mutex
	created []string
}

func (p *recordingProducer) BookingCreated(_ context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, booking.ID)
	return nil
}

func newTestUseCase(repo *memBookingRepo, resolved domain.ResolvedWindow) (*UseCase, *recordingProducer) {
	producer := &recordingProducer{}
	uc := NewUseCase(
		repo,
		&fakeResolver{resolved: resolved},
		&serialTxManager{},
		&seqIDGenerator{},
		producer,
		nil,
		nopLogger{},
	).WithTimeProvider(fixedTime{t: testNow})
	return uc, producer
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	repo := &memBookingRepo{}
	uc, producer := newTestUseCase(repo, testWindow(60))

	resp, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{resp.ID}, producer.created)
}

func TestExecute_BlockedDay(t *testing.T) {
	uc, _ := newTestUseCase(&memBookingRepo{}, domain.BlockedWindow())

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Overlap(t *testing.T) {
	repo := &memBookingRepo{}
	uc, _ := newTestUseCase(repo, testWindow(60))

	first := &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
	}
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Частичное пересечение другим клиентом
	second := &Request{
		ProviderID: "prov_1",
		ClientID:   "client_2",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(12 * time.Hour),
	}
	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrBookingOverlap)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &memBookingRepo{}
	repo.bookings = append(repo.bookings, &domain.Booking{
		ID:         "book_cancelled",
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
		Status:     domain.StatusCancelled,
	})
	uc, _ := newTestUseCase(repo, testWindow(60))

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_2",
		StartAt:    testDay.Add(10 * time.Hour),
		EndAt:      testDay.Add(11 * time.Hour),
	})

	assert.NoError(t, err)
}

func TestExecute_DailyLimit(t *testing.T) {
	resolved := testWindow(60)
	resolved.Constraints.MaxBookingsPerDay = ptr.Ptr(2)

	repo := &memBookingRepo{}
	uc, _ := newTestUseCase(repo, resolved)

	for i, hour := range []int{9, 11} {
		_, err := uc.Execute(context.Background(), &Request{
			ProviderID: "prov_1",
			ClientID:   "client_1",
			StartAt:    testDay.Add(time.Duration(hour) * time.Hour),
			EndAt:      testDay.Add(time.Duration(hour+1) * time.Hour),
		})
		require.NoError(t, err, "booking %d", i)
	}

	// Третье бронирование не пересекается ни с одним, но квота исчерпана
	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(14 * time.Hour),
		EndAt:      testDay.Add(15 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrDailyBookingLimitExceeded)
}

func TestExecute_ClientDailyLimit(t *testing.T) {
	resolved := testWindow(60)
	resolved.Constraints.MaxBookingsPerClientPerDay = ptr.Ptr(1)

	repo := &memBookingRepo{}
	uc, _ := newTestUseCase(repo, resolved)

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(9 * time.Hour),
		EndAt:      testDay.Add(10 * time.Hour),
	})
	require.NoError(t, err)

	// Тот же клиент второй раз — отказ
	_, err = uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(11 * time.Hour),
		EndAt:      testDay.Add(12 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrClientDailyBookingLimitExceeded)

	// Другой клиент — проходит
	_, err = uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_2",
		StartAt:    testDay.Add(11 * time.Hour),
		EndAt:      testDay.Add(12 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestExecute_ConcurrentOverlappingRequests(t *testing.T) {
	repo := &memBookingRepo{}
	uc, _ := newTestUseCase(repo, testWindow(60))

	const workers = 16

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				ProviderID: "prov_1",
				ClientID:   "client_" + string(rune('a'+n)),
				StartAt:    testDay.Add(10 * time.Hour),
				EndAt:      testDay.Add(11 * time.Hour),
			})
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)

	succeeded, overlapped := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrBookingOverlap):
			overlapped++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Ровно один запрос выигрывает слот
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, overlapped)

	stored, err := repo.GetConfirmedByProviderAndDate(context.Background(), "prov_1", testDay)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestExecute_ValidatorOrderBeforeStateChecks(t *testing.T) {
	// Интервал в прошлом и одновременно пересекающийся: валидация
	// отрабатывает до обращения к хранилищу
	repo := &memBookingRepo{}
	repo.bookings = append(repo.bookings, &domain.Booking{
		ID:         "book_existing",
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(6 * time.Hour),
		EndAt:      testDay.Add(7 * time.Hour),
		Status:     domain.StatusConfirmed,
	})
	uc, _ := newTestUseCase(repo, testWindow(60))

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_2",
		StartAt:    testDay.Add(6 * time.Hour),
		EndAt:      testDay.Add(7 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrBookingInPast)
}

func TestExecute_OutsideWindow(t *testing.T) {
	uc, _ := newTestUseCase(&memBookingRepo{}, testWindow(60))

	_, err := uc.Execute(context.Background(), &Request{
		ProviderID: "prov_1",
		ClientID:   "client_1",
		StartAt:    testDay.Add(20 * time.Hour),
		EndAt:      testDay.Add(21 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
