package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimestamps  = "некорректный формат времени, ожидается RFC3339"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgBookingInPast      = "нельзя забронировать время в прошлом"
	msgBookingTooClose    = "слишком поздно для бронирования этого времени"
	msgBookingTooLong     = "длительность бронирования превышает допустимую"
	msgMisalignedDuration = "длительность бронирования не кратна длительности слота"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgBookingOverlap     = "интервал пересекается с существующим бронированием"
	msgDailyLimit         = "достигнут дневной лимит бронирований провайдера"
	msgClientDailyLimit   = "достигнут дневной лимит бронирований клиента"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamps)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrBookingInPast):
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrBookingTooClose):
			handlers.RespondBadRequest(w, msgBookingTooClose)

		case errors.Is(err, createBooking.ErrBookingExceedsMaxDuration):
			handlers.RespondBadRequest(w, msgBookingTooLong)

		case errors.Is(err, createBooking.ErrBookingInvalidDurationForSlot):
			handlers.RespondBadRequest(w, msgMisalignedDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: provider=%s", req.ProviderID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrBookingOverlap):
			h.logger.Warn("POST /bookings - Overlap: provider=%s", req.ProviderID)
			handlers.RespondError(w, http.StatusConflict, msgBookingOverlap)

		case errors.Is(err, createBooking.ErrDailyBookingLimitExceeded):
			handlers.RespondError(w, http.StatusConflict, msgDailyLimit)

		case errors.Is(err, createBooking.ErrClientDailyBookingLimitExceeded):
			handlers.RespondError(w, http.StatusConflict, msgClientDailyLimit)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: provider=%s, client=%s, error=%v",
				req.ProviderID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, provider=%s, client=%s",
		result.ID, req.ProviderID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
