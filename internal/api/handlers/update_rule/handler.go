package update_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule/models"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidRule  = "некорректные параметры правила"
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

// Handle PUT /api/v1/rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]
	if ruleID == "" {
		handlers.RespondBadRequest(w, msgMissingRule)
		return
	}

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rules/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	rule, err := h.service.UpdateRule(r.Context(), ruleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRule)
		default:
			h.logger.Error("PUT /rules/{id} - id=%s: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rule)
}
