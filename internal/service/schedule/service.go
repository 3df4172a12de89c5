package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	exceptionRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/exception"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// Service сервис управления расписанием провайдера:
// CRUD правил доступности и исключений.
// Изменения действуют только на будущую генерацию слотов,
// существующие бронирования не трогают.
type Service struct {
	ruleRepo      RuleRepository
	exceptionRepo ExceptionRepository
	ruleIDs       IDGenerator
	exceptionIDs  IDGenerator
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	ruleRepository RuleRepository,
	exceptionRepository ExceptionRepository,
	ruleIDs IDGenerator,
	exceptionIDs IDGenerator,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:      ruleRepository,
		exceptionRepo: exceptionRepository,
		ruleIDs:       ruleIDs,
		exceptionIDs:  exceptionIDs,
		logger:        logger,
	}
}

// CreateRule создает правило доступности
func (s *Service) CreateRule(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("CreateRule: provider=%s, kind=%s", req.ProviderID, req.Kind)

	rule, err := s.buildRule(req)
	if err != nil {
		s.logger.Warn("CreateRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRule: created rule id=%s for provider=%s", created.RuleID(), req.ProviderID)
	return models.FromDomainRule(created), nil
}

// GetRule получает правило по ID
func (s *Service) GetRule(ctx context.Context, id string) (*models.RuleResponse, error) {
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetRule: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetRule - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRule(rule), nil
}

// ListRules возвращает все правила провайдера
func (s *Service) ListRules(ctx context.Context, providerID string) (*models.RuleListResponse, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	rules, err := s.ruleRepo.GetAllByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListRules: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// UpdateRule обновляет окно и ограничения правила.
// Обновление создаёт новое значение правила: вид и привязка
// (weekday/date) неизменяемы.
func (s *Service) UpdateRule(ctx context.Context, id string, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpdateRule: rule id=%s", id)

	current, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("UpdateRule: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	updated, err := s.applyRuleUpdate(current, req)
	if err != nil {
		s.logger.Warn("UpdateRule: validation failed for rule id=%s: %v", id, err)
		return nil, err
	}

	saved, err := s.ruleRepo.Update(ctx, updated)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("UpdateRule: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRule: updated rule id=%s", id)
	return models.FromDomainRule(saved), nil
}

// DeleteRule мягко удаляет правило
func (s *Service) DeleteRule(ctx context.Context, id string) error {
	s.logger.Info("DeleteRule: rule id=%s", id)

	if err := s.ruleRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateException создает исключение из расписания
func (s *Service) CreateException(ctx context.Context, req *models.CreateExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("CreateException: provider=%s, kind=%s, date=%s", req.ProviderID, req.Kind, req.Date)

	exc, err := s.buildException(req)
	if err != nil {
		s.logger.Warn("CreateException: validation failed: %v", err)
		return nil, err
	}

	created, err := s.exceptionRepo.Create(ctx, exc)
	if err != nil {
		s.logger.Error("CreateException: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateException - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateException: created exception id=%s for provider=%s", created.ExceptionID(), req.ProviderID)
	return models.FromDomainException(created), nil
}

// GetException получает исключение по ID
func (s *Service) GetException(ctx context.Context, id string) (*models.ExceptionResponse, error) {
	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			return nil, ErrExceptionNotFound
		}
		s.logger.Error("GetException: repository error for exception id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetException - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainException(exc), nil
}

// ListExceptions возвращает все исключения провайдера
func (s *Service) ListExceptions(ctx context.Context, providerID string) (*models.ExceptionListResponse, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	exceptions, err := s.exceptionRepo.GetAllByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListExceptions: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListExceptions - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainExceptionList(exceptions), nil
}

// DeleteException удаляет исключение
func (s *Service) DeleteException(ctx context.Context, id string) error {
	s.logger.Info("DeleteException: exception id=%s", id)

	if err := s.exceptionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
			return ErrExceptionNotFound
		}
		s.logger.Error("DeleteException: repository error for exception id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	return nil
}

// buildRule валидирует запрос и собирает доменное правило
func (s *Service) buildRule(req *models.CreateRuleRequest) (domain.BookingRule, error) {
	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	window, err := buildWindow(req.StartTime, req.EndTime, req.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	constraints := domain.RuleConstraints{
		MinAdvanceMinutes:          req.MinAdvanceMinutes,
		MaxDurationMinutes:         req.MaxDurationMinutes,
		MaxBookingsPerDay:          req.MaxBookingsPerDay,
		MaxBookingsPerClientPerDay: req.MaxBookingsPerClientPerDay,
	}
	if err := validateConstraints(constraints); err != nil {
		return nil, err
	}

	switch domain.RuleKind(req.Kind) {
	case domain.RuleKindWeekly:
		if req.Weekday == nil {
			return nil, fmt.Errorf("%w: weekday is required for weekly rule", ErrInvalidInput)
		}
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
		return domain.WeeklyRule{
			ID:                  s.ruleIDs.NewID(),
			ProviderID:          req.ProviderID,
			Weekday:             time.Weekday(*req.Weekday),
			StartTime:           window.StartTime,
			EndTime:             window.EndTime,
			SlotDurationMinutes: window.SlotDurationMinutes,
			RuleConstraints:     constraints,
		}, nil

	case domain.RuleKindSpecificDate:
		if req.Date == nil {
			return nil, fmt.Errorf("%w: date is required for specific_date rule", ErrInvalidInput)
		}
		date, err := time.ParseInLocation(domain.DateFormat, *req.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		return domain.SpecificDateRule{
			ID:                  s.ruleIDs.NewID(),
			ProviderID:          req.ProviderID,
			Date:                timeutil.DateOnly(date),
			StartTime:           window.StartTime,
			EndTime:             window.EndTime,
			SlotDurationMinutes: window.SlotDurationMinutes,
			RuleConstraints:     constraints,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown rule kind %q", ErrInvalidInput, req.Kind)
	}
}

// applyRuleUpdate накладывает частичное обновление на правило
func (s *Service) applyRuleUpdate(current domain.BookingRule, req *models.UpdateRuleRequest) (domain.BookingRule, error) {
	window := current.Window()
	constraints := current.Constraints()

	if req.StartTime != nil {
		parsed, err := models.ParseTimeString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		window.StartTime = parsed
	}
	if req.EndTime != nil {
		parsed, err := models.ParseTimeString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		window.EndTime = parsed
	}
	if req.SlotDurationMinutes != nil {
		window.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if err := validateWindow(window); err != nil {
		return nil, err
	}

	if req.MinAdvanceMinutes != nil {
		constraints.MinAdvanceMinutes = req.MinAdvanceMinutes
	}
	if req.MaxDurationMinutes != nil {
		constraints.MaxDurationMinutes = req.MaxDurationMinutes
	}
	if req.MaxBookingsPerDay != nil {
		constraints.MaxBookingsPerDay = req.MaxBookingsPerDay
	}
	if req.MaxBookingsPerClientPerDay != nil {
		constraints.MaxBookingsPerClientPerDay = req.MaxBookingsPerClientPerDay
	}

	if err := validateConstraints(constraints); err != nil {
		return nil, err
	}

	switch rule := current.(type) {
	case domain.WeeklyRule:
		rule.StartTime = window.StartTime
		rule.EndTime = window.EndTime
		rule.SlotDurationMinutes = window.SlotDurationMinutes
		rule.RuleConstraints = constraints
		return rule, nil
	case domain.SpecificDateRule:
		rule.StartTime = window.StartTime
		rule.EndTime = window.EndTime
		rule.SlotDurationMinutes = window.SlotDurationMinutes
		rule.RuleConstraints = constraints
		return rule, nil
	default:
		return nil, fmt.Errorf("%w: unknown rule kind %T", ErrInternal, current)
	}
}

// buildException валидирует запрос и собирает доменное исключение
func (s *Service) buildException(req *models.CreateExceptionRequest) (domain.BookingException, error) {
	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	switch domain.ExceptionKind(req.Kind) {
	case domain.ExceptionKindBlock:
		return domain.BlockException{
			ID:         s.exceptionIDs.NewID(),
			ProviderID: req.ProviderID,
			Date:       timeutil.DateOnly(date),
			Reason:     req.Reason,
		}, nil

	case domain.ExceptionKindOverride:
		if req.StartTime == nil || req.EndTime == nil || req.SlotDurationMinutes == nil {
			return nil, fmt.Errorf("%w: startTime, endTime and slotDurationMinutes are required for override exception", ErrInvalidInput)
		}
		window, err := buildWindow(*req.StartTime, *req.EndTime, *req.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		return domain.OverrideException{
			ID:                  s.exceptionIDs.NewID(),
			ProviderID:          req.ProviderID,
			Date:                timeutil.DateOnly(date),
			StartTime:           window.StartTime,
			EndTime:             window.EndTime,
			SlotDurationMinutes: window.SlotDurationMinutes,
			Reason:              req.Reason,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}
}

// buildWindow парсит и валидирует окно доступности
func buildWindow(startTime, endTime string, slotDurationMinutes int) (domain.Window, error) {
	start, err := models.ParseTimeString(startTime)
	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	end, err := models.ParseTimeString(endTime)
	if err != nil {
		return domain.Window{}, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	window := domain.Window{
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: slotDurationMinutes,
	}
	if err := validateWindow(window); err != nil {
		return domain.Window{}, err
	}

	return window, nil
}

// validateWindow проверяет инварианты окна
func validateWindow(window domain.Window) error {
	if !window.StartTime.IsBefore(window.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if window.SlotDurationMinutes < domain.MinSlotDurationMinutes || window.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return nil
}

// validateConstraints проверяет, что заданные ограничения неотрицательны
func validateConstraints(c domain.RuleConstraints) error {
	for name, value := range map[string]*int{
		"minAdvanceMinutes":          c.MinAdvanceMinutes,
		"maxDurationMinutes":         c.MaxDurationMinutes,
		"maxBookingsPerDay":          c.MaxBookingsPerDay,
		"maxBookingsPerClientPerDay": c.MaxBookingsPerClientPerDay,
	} {
		if value != nil && *value <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
		}
	}
	return nil
}
