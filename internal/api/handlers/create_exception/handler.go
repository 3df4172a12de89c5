package create_exception

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidException = "некорректные параметры исключения"
	msgMissingProvider  = "не указан провайдер"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerId}/exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		handlers.RespondBadRequest(w, msgMissingProvider)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/exceptions - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	exception, err := h.service.CreateException(r.Context(), req.ToServiceRequest(providerID))
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidException)
			return
		}
		h.logger.Error("POST /providers/{id}/exceptions - provider=%s: %v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, exception)
}
