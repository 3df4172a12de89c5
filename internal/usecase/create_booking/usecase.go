package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
)

// UseCase use case создания бронирования (admission).
// Проверки состояния и вставка выполняются в одной сериализуемой
// транзакции: два конкурирующих запроса на пересекающиеся интервалы
// никогда не приводят к двум confirmed-бронированиям.
type UseCase struct {
	bookingRepo        BookingRepository
	availability       AvailabilityResolver
	txManager          TransactionManager
	idGenerator        IDGenerator
	eventProducer      EventProducer
	notificationClient NotificationClient
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityResolver,
	txManager TransactionManager,
	idGenerator IDGenerator,
	eventProducer EventProducer,
	notificationClient NotificationClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		availability:       availability,
		txManager:          txManager,
		idGenerator:        idGenerator,
		eventProducer:      eventProducer,
		notificationClient: notificationClient,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет создание бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: provider=%s, client=%s, start=%s, end=%s",
		req.ProviderID, req.ClientID, req.StartAt.Format(domain.DateFormat+" "+domain.TimeFormat), req.EndAt.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	startAt := req.StartAt.UTC()
	endAt := req.EndAt.UTC()
	now := uc.timeProvider.Now().UTC()

	// 2. Разрешаем окно доступности на дату начала.
	// Нет окна — слот недоступен: это ошибка конфигурации провайдера,
	// а не системная ошибка.
	resolved, err := uc.availability.ResolveWindow(ctx, req.ProviderID, startAt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve window for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to resolve availability window: %v", ErrInternal, err)
	}
	if resolved.Blocked {
		uc.logger.Warn("CreateBooking: provider=%s has no availability on %s", req.ProviderID, startAt.Format(domain.DateFormat))
		return nil, ErrSlotNotAvailable
	}

	// 3. Чистые проверки интервала, строго в фиксированном порядке
	if err := validateBooking(startAt, endAt, now, resolved); err != nil {
		uc.logger.Warn("CreateBooking: booking validation failed: %v", err)
		return nil, err
	}

	// 4. Интервал должен лежать внутри окна
	if err := validateWithinWindow(startAt, endAt, resolved.Window); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Проверки состояния и вставка — одна атомарная единица.
	// Выборка внутри транзакции блокирует строки (FOR UPDATE), повтор
	// при serialization failure скрыт внутри менеджера транзакций.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Пересечения с существующими confirmed-бронированиями
		bookings, err := uc.bookingRepo.GetConfirmedByProviderAndDate(txCtx, req.ProviderID, startAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if conflict := findOverlap(startAt, endAt, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: interval overlaps booking id=%s", conflict.ID)
			return ErrBookingOverlap
		}

		// 5.2. Дневная квота провайдера
		if limit := resolved.Constraints.MaxBookingsPerDay; limit != nil {
			if countConfirmed(bookings) >= *limit {
				uc.logger.Warn("CreateBooking: provider=%s daily limit %d reached", req.ProviderID, *limit)
				return ErrDailyBookingLimitExceeded
			}
		}

		// 5.3. Дневная квота клиента у провайдера
		if limit := resolved.Constraints.MaxBookingsPerClientPerDay; limit != nil {
			clientBookings, err := uc.bookingRepo.GetConfirmedByProviderClientAndDate(txCtx, req.ProviderID, req.ClientID, startAt)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get client bookings: %v", err)
				return fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
			}
			if countConfirmed(clientBookings) >= *limit {
				uc.logger.Warn("CreateBooking: client=%s daily limit %d at provider=%s reached", req.ClientID, *limit, req.ProviderID)
				return ErrClientDailyBookingLimitExceeded
			}
		}

		// 5.4. Вставка confirmed-бронирования
		booking := &domain.Booking{
			ID:         uc.idGenerator.NewID(),
			ProviderID: req.ProviderID,
			ClientID:   req.ClientID,
			StartAt:    startAt,
			EndAt:      endAt,
			Status:     domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// После коммита: событие и уведомление. Ошибки здесь не откатывают
	// бронирование — только логируются.
	uc.publishCreated(ctx, result)

	return &Response{
		ID:              result.ID,
		ProviderID:      result.ProviderID,
		ClientID:        result.ClientID,
		StartAt:         result.StartAt,
		EndAt:           result.EndAt,
		DurationMinutes: timeutil.DurationMinutes(result.StartAt, result.EndAt),
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) publishCreated(ctx context.Context, booking *domain.Booking) {
	if uc.eventProducer != nil {
		if err := uc.eventProducer.BookingCreated(ctx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", booking.ID, err)
		}
	}

	if uc.notificationClient != nil {
		if err := uc.notificationClient.SendBookingConfirmation(ctx, booking); err != nil {
			uc.logger.Warn("CreateBooking: failed to send confirmation for booking id=%s: %v", booking.ID, err)
		}
	}
}
