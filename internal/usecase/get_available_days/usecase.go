package get_available_days

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// UseCase use case получения дней с доступными слотами
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityService AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilityService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет получение доступных дней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}
	if req.DaysAhead < 1 || req.DaysAhead > domain.MaxDaysAheadLimit {
		return nil, fmt.Errorf("%w: daysAhead must be between 1 and %d", ErrInvalidInput, domain.MaxDaysAheadLimit)
	}

	from := timeutil.DateOnly(uc.timeProvider.Now().UTC())
	if req.FromDate != nil {
		from = timeutil.DateOnly(*req.FromDate)
	}

	uc.logger.Info("GetAvailableDays: provider=%s, from=%s, daysAhead=%d",
		req.ProviderID, from.Format(domain.DateFormat), req.DaysAhead)

	days, err := uc.availability.GetAvailableDays(ctx, req.ProviderID, from, req.DaysAhead)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableDays: provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get days: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableDays: provider=%s: %d days available", req.ProviderID, len(days))

	return &Response{
		ProviderID: req.ProviderID,
		FromDate:   from,
		DaysAhead:  req.DaysAhead,
		Days:       days,
	}, nil
}
