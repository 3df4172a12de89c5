package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ExceptionKind вид исключения из расписания
type ExceptionKind string

const (
	ExceptionKindBlock    ExceptionKind = "block"
	ExceptionKindOverride ExceptionKind = "override"
)

// BookingException исключение из расписания на конкретную дату.
// Sum type: BlockException | OverrideException.
// Исключения имеют приоритет над правилами для своей даты.
type BookingException interface {
	ExceptionID() string
	Provider() string
	Kind() ExceptionKind
	ExceptionDate() time.Time
}

// BlockException полная блокировка даты: нулевая доступность
// независимо от правил
type BlockException struct {
	ID         string
	ProviderID string
	Date       time.Time // полночь UTC
	Reason     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e BlockException) ExceptionID() string      { return e.ID }
func (e BlockException) Provider() string         { return e.ProviderID }
func (e BlockException) Kind() ExceptionKind      { return ExceptionKindBlock }
func (e BlockException) ExceptionDate() time.Time { return e.Date }

// OverrideException замена окна доступности на конкретную дату.
// Полностью заменяет окно из правил; поиск правила при этом не выполняется,
// поэтому ограничения правил (квоты, advance) на такую дату не действуют.
type OverrideException struct {
	ID                  string
	ProviderID          string
	Date                time.Time // полночь UTC
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Reason              *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e OverrideException) ExceptionID() string      { return e.ID }
func (e OverrideException) Provider() string         { return e.ProviderID }
func (e OverrideException) Kind() ExceptionKind      { return ExceptionKindOverride }
func (e OverrideException) ExceptionDate() time.Time { return e.Date }

// Window возвращает заменяющее окно доступности
func (e OverrideException) Window() Window {
	return Window{
		StartTime:           e.StartTime,
		EndTime:             e.EndTime,
		SlotDurationMinutes: e.SlotDurationMinutes,
	}
}
