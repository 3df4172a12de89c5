package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// RuleKind вид правила доступности
type RuleKind string

const (
	RuleKindWeekly       RuleKind = "weekly"
	RuleKindSpecificDate RuleKind = "specific_date"
)

// Window бронируемое окно в пределах одного дня
type Window struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
}

// IsValid проверяет базовые инварианты окна: start < end, slot duration > 0
func (w Window) IsValid() bool {
	return !w.StartTime.IsZero() &&
		!w.EndTime.IsZero() &&
		w.StartTime.IsBefore(w.EndTime) &&
		w.SlotDurationMinutes > 0
}

// RuleConstraints опциональные ограничения правила
// nil означает, что ограничение не задано
type RuleConstraints struct {
	MinAdvanceMinutes          *int
	MaxDurationMinutes         *int
	MaxBookingsPerDay          *int
	MaxBookingsPerClientPerDay *int
}

// BookingRule правило доступности провайдера.
// Sum type: WeeklyRule | SpecificDateRule — поля каждого варианта
// гарантированы компилятором, а не runtime-проверками.
type BookingRule interface {
	RuleID() string
	Provider() string
	Kind() RuleKind
	Window() Window
	Constraints() RuleConstraints
	// AppliesTo проверяет, действует ли правило на указанную дату (UTC)
	AppliesTo(date time.Time) bool
}

// WeeklyRule еженедельно повторяющееся правило (например, каждый вторник 10:00-18:00)
type WeeklyRule struct {
	ID                  string
	ProviderID          string
	Weekday             time.Weekday // Sunday = 0
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	RuleConstraints

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r WeeklyRule) RuleID() string   { return r.ID }
func (r WeeklyRule) Provider() string { return r.ProviderID }
func (r WeeklyRule) Kind() RuleKind   { return RuleKindWeekly }

func (r WeeklyRule) Window() Window {
	return Window{
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}

func (r WeeklyRule) Constraints() RuleConstraints { return r.RuleConstraints }

func (r WeeklyRule) AppliesTo(date time.Time) bool {
	return date.UTC().Weekday() == r.Weekday
}

// SpecificDateRule правило на конкретную календарную дату
type SpecificDateRule struct {
	ID                  string
	ProviderID          string
	Date                time.Time // полночь UTC
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	RuleConstraints

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r SpecificDateRule) RuleID() string   { return r.ID }
func (r SpecificDateRule) Provider() string { return r.ProviderID }
func (r SpecificDateRule) Kind() RuleKind   { return RuleKindSpecificDate }

func (r SpecificDateRule) Window() Window {
	return Window{
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
}

func (r SpecificDateRule) Constraints() RuleConstraints { return r.RuleConstraints }

func (r SpecificDateRule) AppliesTo(date time.Time) bool {
	y1, m1, d1 := r.Date.UTC().Date()
	y2, m2, d2 := date.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WindowSource источник разрешённого окна (для логов и отладки)
type WindowSource string

const (
	SourceBlocked           WindowSource = "blocked"
	SourceExceptionOverride WindowSource = "exception_override"
	SourceSpecificDateRule  WindowSource = "specific_date_rule"
	SourceWeeklyRule        WindowSource = "weekly_rule"
)

// ResolvedWindow результат разрешения правил и исключений на конкретную дату.
// Приоритет: exception block > exception override > specific_date rule > weekly rule.
// Если ничего не найдено — день заблокирован (нет доступности).
type ResolvedWindow struct {
	Blocked     bool
	Window      Window
	Constraints RuleConstraints
	Source      WindowSource
}

// BlockedWindow возвращает разрешённое окно "день недоступен"
func BlockedWindow() ResolvedWindow {
	return ResolvedWindow{Blocked: true, Source: SourceBlocked}
}
