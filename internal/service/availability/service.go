package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// Service сервис расчёта доступности провайдера.
// Разрешает правила и исключения в окно на дату и генерирует слоты.
// Работает на доменных типах: обёртки в API-модели делают usecases.
type Service struct {
	ruleRepo      RuleRepository
	exceptionRepo ExceptionRepository
	bookingRepo   BookingRepository
	logger        Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	ruleRepo RuleRepository,
	exceptionRepo ExceptionRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:      ruleRepo,
		exceptionRepo: exceptionRepo,
		bookingRepo:   bookingRepo,
		logger:        logger,
	}
}

// ResolveWindow разрешает правила и исключения провайдера в окно на дату.
// Приоритет: block-исключение > override-исключение > specific_date правило > weekly правило.
// Если ничего не подошло — день заблокирован.
func (s *Service) ResolveWindow(ctx context.Context, providerID string, date time.Time) (domain.ResolvedWindow, error) {
	day := timeutil.DateOnly(date)

	exceptions, err := s.exceptionRepo.FindByProviderAndDate(ctx, providerID, day)
	if err != nil {
		return domain.ResolvedWindow{}, fmt.Errorf("%w: ResolveWindow - exceptions lookup: %v", ErrInternal, err)
	}

	// Block имеет абсолютный приоритет, даже если на ту же дату есть override
	var override *domain.OverrideException
	for _, exc := range exceptions {
		switch e := exc.(type) {
		case domain.BlockException:
			return domain.BlockedWindow(), nil
		case domain.OverrideException:
			if override == nil {
				override = &e
			}
		}
	}

	if override != nil {
		// Override полностью заменяет окно; поиск правил не выполняется,
		// поэтому ограничения правил на такую дату не действуют
		return domain.ResolvedWindow{
			Window: override.Window(),
			Source: domain.SourceExceptionOverride,
		}, nil
	}

	specific, err := s.ruleRepo.FindSpecificByProviderAndDate(ctx, providerID, day)
	if err != nil {
		return domain.ResolvedWindow{}, fmt.Errorf("%w: ResolveWindow - specific rules lookup: %v", ErrInternal, err)
	}
	if rule := s.pickRule(providerID, day, specific); rule != nil {
		return domain.ResolvedWindow{
			Window:      rule.Window(),
			Constraints: rule.Constraints(),
			Source:      domain.SourceSpecificDateRule,
		}, nil
	}

	weekly, err := s.ruleRepo.FindWeeklyByProviderAndWeekday(ctx, providerID, timeutil.WeekdayOf(day))
	if err != nil {
		return domain.ResolvedWindow{}, fmt.Errorf("%w: ResolveWindow - weekly rules lookup: %v", ErrInternal, err)
	}
	if rule := s.pickRule(providerID, day, weekly); rule != nil {
		return domain.ResolvedWindow{
			Window:      rule.Window(),
			Constraints: rule.Constraints(),
			Source:      domain.SourceWeeklyRule,
		}, nil
	}

	return domain.BlockedWindow(), nil
}

// pickRule выбирает правило из кандидатов одного вида.
// Несколько подходящих правил — ошибка конфигурации провайдера: логируем
// и детерминированно берём первое (выборка упорядочена по created_at, id).
func (s *Service) pickRule(providerID string, date time.Time, rules []domain.BookingRule) domain.BookingRule {
	if len(rules) == 0 {
		return nil
	}
	if len(rules) > 1 {
		s.logger.Warn(
			"ResolveWindow: provider=%s has %d conflicting %s rules for date=%s, using rule=%s",
			providerID, len(rules), rules[0].Kind(), date.Format(domain.DateFormat), rules[0].RuleID(),
		)
	}
	return rules[0]
}

// GetAvailableSlots возвращает свободные слоты провайдера на дату.
// Слоты нарезаются от начала окна подряд по slot_duration; неполный
// хвост окна отбрасывается. Слот исключается, если пересекается
// хотя бы с одним confirmed-бронированием.
func (s *Service) GetAvailableSlots(ctx context.Context, providerID string, date time.Time) ([]domain.Slot, error) {
	resolved, err := s.ResolveWindow(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	if resolved.Blocked {
		return []domain.Slot{}, nil
	}

	slots, err := s.generateSlots(providerID, date, resolved.Window)
	if err != nil {
		s.logger.Error("GetAvailableSlots: provider=%s date=%s: invalid window: %v", providerID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - generate slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		return []domain.Slot{}, nil
	}

	bookings, err := s.bookingRepo.GetConfirmedByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - bookings lookup: %v", ErrInternal, err)
	}

	available := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !slotTaken(slot, bookings) {
			available = append(available, slot)
		}
	}

	return available, nil
}

// GetAvailableDays возвращает даты с хотя бы одним свободным слотом
// в диапазоне [from, from+daysAhead)
func (s *Service) GetAvailableDays(ctx context.Context, providerID string, from time.Time, daysAhead int) ([]time.Time, error) {
	if daysAhead < 1 || daysAhead > domain.MaxDaysAheadLimit {
		return nil, fmt.Errorf("%w: days_ahead must be between 1 and %d", ErrInvalidInput, domain.MaxDaysAheadLimit)
	}

	start := timeutil.DateOnly(from)
	days := make([]time.Time, 0)
	for i := 0; i < daysAhead; i++ {
		day := timeutil.AddDays(start, i)
		slots, err := s.GetAvailableSlots(ctx, providerID, day)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			days = append(days, day)
		}
	}

	return days, nil
}

// generateSlots нарезает окно на слоты фиксированной длительности.
// Генерация детерминированная: одно и то же окно всегда даёт одни и те же слоты.
func (s *Service) generateSlots(providerID string, date time.Time, window domain.Window) ([]domain.Slot, error) {
	if !window.IsValid() {
		return nil, fmt.Errorf("window %s-%s/%d is not valid", window.StartTime, window.EndTime, window.SlotDurationMinutes)
	}

	day := timeutil.DateOnly(date)
	slots := make([]domain.Slot, 0)

	cursor := window.StartTime
	for {
		next, err := cursor.AddMinutes(window.SlotDurationMinutes)
		if err != nil {
			// Слот вылез за полночь — хвост отбрасываем
			break
		}
		if next.IsAfter(window.EndTime) {
			break
		}
		slots = append(slots, domain.Slot{
			ProviderID: providerID,
			Date:       day,
			StartAt:    cursor.AtDate(day),
			EndAt:      next.AtDate(day),
		})
		cursor = next
	}

	return slots, nil
}

func slotTaken(slot domain.Slot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if timeutil.Overlaps(slot.StartAt, slot.EndAt, booking.StartAt, booking.EndAt) {
			return true
		}
	}
	return false
}
