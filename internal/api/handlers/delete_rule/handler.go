package delete_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgMissingRule  = "не указан идентификатор правила"
	msgRuleNotFound = "правило не найдено"
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

// Handle DELETE /api/v1/rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]
	if ruleID == "" {
		handlers.RespondBadRequest(w, msgMissingRule)
		return
	}

	if err := h.service.DeleteRule(r.Context(), ruleID); err != nil {
		if errors.Is(err, schedule.ErrRuleNotFound) {
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}
		h.logger.Error("DELETE /rules/{id} - id=%s: %v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
