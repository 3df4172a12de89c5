package delete_exception

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgExceptionNotFound = "исключение не найдено"
	msgMissingException  = "не указан идентификатор исключения"
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

// Handle DELETE /api/v1/exceptions/{exceptionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	exceptionID := mux.Vars(r)["exceptionId"]
	if exceptionID == "" {
		handlers.RespondBadRequest(w, msgMissingException)
		return
	}

	if err := h.service.DeleteException(r.Context(), exceptionID); err != nil {
		if errors.Is(err, schedule.ErrExceptionNotFound) {
			handlers.RespondNotFound(w, msgExceptionNotFound)
			return
		}
		h.logger.Error("DELETE /exceptions/{id} - id=%s: %v", exceptionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
