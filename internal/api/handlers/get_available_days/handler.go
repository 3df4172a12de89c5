package get_available_days

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getAvailableDays "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_days"
)

const (
	msgInvalidFromDate  = "некорректный формат даты from, ожидается YYYY-MM-DD"
	msgInvalidDaysAhead = "некорректное значение days_ahead"
	msgMissingProvider  = "не указан провайдер"
)

// defaultDaysAhead глубина просмотра, если days_ahead не передан
const defaultDaysAhead = 14

type Handler struct {
	useCase GetAvailableDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/available-days?from=YYYY-MM-DD&days_ahead=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID := mux.Vars(r)["providerId"]
	if providerID == "" {
		handlers.RespondBadRequest(w, msgMissingProvider)
		return
	}

	req := &getAvailableDays.Request{
		ProviderID: providerID,
		DaysAhead:  defaultDaysAhead,
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.ParseInLocation(domain.DateFormat, raw, time.UTC)
		if err != nil {
			h.logger.Warn("GET /available-days - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFromDate)
			return
		}
		req.FromDate = &from
	}

	if raw := r.URL.Query().Get("days_ahead"); raw != "" {
		daysAhead, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /available-days - Invalid days_ahead: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDaysAhead)
			return
		}
		req.DaysAhead = daysAhead
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getAvailableDays.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDaysAhead)
			return
		}
		h.logger.Error("GET /available-days - provider=%s: %v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
