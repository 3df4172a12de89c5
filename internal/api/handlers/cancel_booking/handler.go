package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgCannotCancel    = "бронирование нельзя отменить: оно уже завершено или отменено"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidReason   = "некорректная причина отмены"
	msgMissingBooking  = "не указан идентификатор бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgMissingBooking)
		return
	}

	var req CancelBookingRequest
	// Тело опционально: отмена без причины допустима
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
	}

	booking, err := h.service.Cancel(r.Context(), &models.CancelBookingRequest{
		BookingID:          bookingID,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrCannotCancel):
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReason)
		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - id=%s: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
