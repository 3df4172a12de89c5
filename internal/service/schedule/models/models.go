package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модели

// CreateRuleRequest запрос на создание правила доступности.
// Для kind=weekly обязателен weekday, для kind=specific_date — date.
type CreateRuleRequest struct {
	ProviderID          string  `json:"providerId"`
	Kind                string  `json:"kind"`              // weekly | specific_date
	Weekday             *int    `json:"weekday,omitempty"` // 0 = воскресенье
	Date                *string `json:"date,omitempty"`    // YYYY-MM-DD
	StartTime           string  `json:"startTime"`         // HH:MM
	EndTime             string  `json:"endTime"`           // HH:MM
	SlotDurationMinutes int     `json:"slotDurationMinutes"`

	MinAdvanceMinutes          *int `json:"minAdvanceMinutes,omitempty"`
	MaxDurationMinutes         *int `json:"maxDurationMinutes,omitempty"`
	MaxBookingsPerDay          *int `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerClientPerDay *int `json:"maxBookingsPerClientPerDay,omitempty"`
}

// UpdateRuleRequest запрос на обновление правила
// Вид правила и его привязка (weekday/date) неизменяемы; обновляются
// только переданные поля окна и ограничений
type UpdateRuleRequest struct {
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`

	MinAdvanceMinutes          *int `json:"minAdvanceMinutes,omitempty"`
	MaxDurationMinutes         *int `json:"maxDurationMinutes,omitempty"`
	MaxBookingsPerDay          *int `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerClientPerDay *int `json:"maxBookingsPerClientPerDay,omitempty"`
}

// CreateExceptionRequest запрос на создание исключения.
// Для kind=override обязательны startTime, endTime и slotDurationMinutes.
type CreateExceptionRequest struct {
	ProviderID          string  `json:"providerId"`
	Kind                string  `json:"kind"` // block | override
	Date                string  `json:"date"` // YYYY-MM-DD
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Reason              *string `json:"reason,omitempty"`
}

// Response модели

// RuleResponse правило доступности в ответе API
type RuleResponse struct {
	ID                  string  `json:"id"`
	ProviderID          string  `json:"providerId"`
	Kind                string  `json:"kind"`
	Weekday             *int    `json:"weekday,omitempty"`
	Date                *string `json:"date,omitempty"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	SlotDurationMinutes int     `json:"slotDurationMinutes"`

	MinAdvanceMinutes          *int `json:"minAdvanceMinutes,omitempty"`
	MaxDurationMinutes         *int `json:"maxDurationMinutes,omitempty"`
	MaxBookingsPerDay          *int `json:"maxBookingsPerDay,omitempty"`
	MaxBookingsPerClientPerDay *int `json:"maxBookingsPerClientPerDay,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse список правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// ExceptionResponse исключение в ответе API
type ExceptionResponse struct {
	ID                  string  `json:"id"`
	ProviderID          string  `json:"providerId"`
	Kind                string  `json:"kind"`
	Date                string  `json:"date"`
	StartTime           *string `json:"startTime,omitempty"`
	EndTime             *string `json:"endTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	Reason              *string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExceptionListResponse список исключений
type ExceptionListResponse struct {
	Exceptions []ExceptionResponse `json:"exceptions"`
	Total      int                 `json:"total"`
}

// Методы конвертации

// FromDomainRule конвертирует доменное правило в DTO
func FromDomainRule(rule domain.BookingRule) *RuleResponse {
	window := rule.Window()
	constraints := rule.Constraints()

	resp := &RuleResponse{
		ID:                         rule.RuleID(),
		ProviderID:                 rule.Provider(),
		Kind:                       string(rule.Kind()),
		StartTime:                  window.StartTime.String(),
		EndTime:                    window.EndTime.String(),
		SlotDurationMinutes:        window.SlotDurationMinutes,
		MinAdvanceMinutes:          constraints.MinAdvanceMinutes,
		MaxDurationMinutes:         constraints.MaxDurationMinutes,
		MaxBookingsPerDay:          constraints.MaxBookingsPerDay,
		MaxBookingsPerClientPerDay: constraints.MaxBookingsPerClientPerDay,
	}

	switch r := rule.(type) {
	case domain.WeeklyRule:
		weekday := int(r.Weekday)
		resp.Weekday = &weekday
		resp.CreatedAt = r.CreatedAt
		resp.UpdatedAt = r.UpdatedAt
	case domain.SpecificDateRule:
		date := r.Date.Format(domain.DateFormat)
		resp.Date = &date
		resp.CreatedAt = r.CreatedAt
		resp.UpdatedAt = r.UpdatedAt
	}

	return resp
}

// FromDomainRuleList конвертирует список доменных правил
func FromDomainRuleList(rules []domain.BookingRule) *RuleListResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, *FromDomainRule(r))
	}
	return &RuleListResponse{Rules: out, Total: len(out)}
}

// FromDomainException конвертирует доменное исключение в DTO
func FromDomainException(exc domain.BookingException) *ExceptionResponse {
	resp := &ExceptionResponse{
		ID:         exc.ExceptionID(),
		ProviderID: exc.Provider(),
		Kind:       string(exc.Kind()),
		Date:       exc.ExceptionDate().Format(domain.DateFormat),
	}

	switch e := exc.(type) {
	case domain.BlockException:
		resp.Reason = e.Reason
		resp.CreatedAt = e.CreatedAt
		resp.UpdatedAt = e.UpdatedAt
	case domain.OverrideException:
		start := e.StartTime.String()
		end := e.EndTime.String()
		slot := e.SlotDurationMinutes
		resp.StartTime = &start
		resp.EndTime = &end
		resp.SlotDurationMinutes = &slot
		resp.Reason = e.Reason
		resp.CreatedAt = e.CreatedAt
		resp.UpdatedAt = e.UpdatedAt
	}

	return resp
}

// FromDomainExceptionList конвертирует список доменных исключений
func FromDomainExceptionList(exceptions []domain.BookingException) *ExceptionListResponse {
	out := make([]ExceptionResponse, 0, len(exceptions))
	for _, e := range exceptions {
		out = append(out, *FromDomainException(e))
	}
	return &ExceptionListResponse{Exceptions: out, Total: len(out)}
}

// ParseTimeString валидирует и конвертирует "HH:MM" в types.TimeString
func ParseTimeString(s string) (types.TimeString, error) {
	return types.NewTimeStringFromString(s)
}
