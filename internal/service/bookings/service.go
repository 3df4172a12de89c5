package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: чтение, отмена,
// переходы confirmed -> completed | no_show
type Service struct {
	bookingRepo        BookingRepository
	txManager          TransactionManager
	eventProducer      EventProducer
	notificationClient NotificationClient
	logger             Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	eventProducer EventProducer,
	notificationClient NotificationClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:        bookingRepo,
		txManager:          txManager,
		eventProducer:      eventProducer,
		notificationClient: notificationClient,
		logger:             logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientID, req.Status)

	if req.ClientID == "" {
		return nil, fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClient(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает бронирования провайдера с гибкой фильтрацией
// Поддерживает фильтры по клиенту, периоду, статусу и включению терминальных статусов
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%s", req.ProviderID)

	if req.ProviderID == "" {
		return nil, fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: fetched %d bookings for provider=%s", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование: переход confirmed -> cancelled.
// Отмена не идемпотентна: повторная отмена или отмена завершённого
// бронирования возвращает ErrCannotCancel.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", req.BookingID)

	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	// Проверка статуса и запись — в одной транзакции, чтобы гонка двух
	// отмен не прошла по одному бронированию дважды
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s has status=%s, cannot cancel", booking.ID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, req.BookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled, err = s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: Cancel - refetch error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrCannotCancel) {
			return nil, err
		}
		s.logger.Error("Cancel: booking id=%s: %v", req.BookingID, err)
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", cancelled.ID)

	// После коммита отменённое бронирование больше не участвует
	// в проверках пересечений и квот. Событие и уведомление best-effort.
	if s.eventProducer != nil {
		if err := s.eventProducer.BookingCancelled(ctx, cancelled); err != nil {
			s.logger.Error("Cancel: failed to publish event for booking id=%s: %v", cancelled.ID, err)
		}
	}
	if s.notificationClient != nil {
		if err := s.notificationClient.SendBookingCancellation(ctx, cancelled); err != nil {
			s.logger.Warn("Cancel: failed to send cancellation notice for booking id=%s: %v", cancelled.ID, err)
		}
	}

	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus переводит бронирование в терминальный статус
// (completed или no_show). Переходы только из confirmed.
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s -> status=%s", req.BookingID, req.Status)

	if req.BookingID == "" {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Отмена имеет собственный маршрут с причиной и timestamp
	if newStatus == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: use cancel endpoint to cancel a booking", ErrInvalidStatus)
	}

	var updated *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		if !domain.ValidStatusTransition(booking.Status, newStatus) {
			s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%s", booking.Status, newStatus, booking.ID)
			return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatus, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, req.BookingID, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		updated, err = s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - refetch error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%s now has status=%s", updated.ID, updated.Status)

	if s.eventProducer != nil {
		if err := s.eventProducer.BookingStatusChanged(ctx, updated); err != nil {
			s.logger.Error("UpdateStatus: failed to publish event for booking id=%s: %v", updated.ID, err)
		}
	}

	return models.FromDomainBooking(updated), nil
}
