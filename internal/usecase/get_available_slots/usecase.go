package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// UseCase use case получения доступных слотов на дату.
// Путь чтения без блокировок: короткое окно неконсистентности допустимо,
// гонку поймает атомарная проверка при создании бронирования.
type UseCase struct {
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет получение доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := timeutil.DateOnly(req.Date)

	slots, err := uc.availability.GetAvailableSlots(ctx, req.ProviderID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: provider=%s date=%s: %v", req.ProviderID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: provider=%s date=%s: %d slots available",
		req.ProviderID, date.Format(domain.DateFormat), len(slots))

	return fromDomainSlots(req.ProviderID, date, slots), nil
}
