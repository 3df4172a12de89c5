package rule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ScheduleService/pkg/timeutil"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var ruleColumns = []string{
	"id",
	"provider_id",
	"kind",
	"weekday",
	"date",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"min_advance_minutes",
	"max_duration_minutes",
	"max_bookings_per_day",
	"max_bookings_per_client_per_day",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил доступности.
// Правила удаляются мягко (deleted_at): на них могут ссылаться будущие
// бронирования. Все выборки исключают удалённые строки.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое правило (weekly или specific_date)
func (r *Repository) Create(ctx context.Context, bookingRule domain.BookingRule) (domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row, err := flattenRule(bookingRule)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("booking_rules").
		Columns(
			"id",
			"provider_id",
			"kind",
			"weekday",
			"date",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"min_advance_minutes",
			"max_duration_minutes",
			"max_bookings_per_day",
			"max_bookings_per_client_per_day",
		).
		Values(
			row.id,
			row.providerID,
			row.kind,
			row.weekday,
			row.date,
			row.startTime,
			row.endTime,
			row.slotDurationMinutes,
			row.minAdvanceMinutes,
			row.maxDurationMinutes,
			row.maxBookingsPerDay,
			row.maxBookingsPerClientPerDay,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	row.createdAt = createdAt.Time
	row.updatedAt = updatedAt.Time
	return row.toDomain()
}

// GetByID получает правило по ID (кроме удалённых)
func (r *Repository) GetByID(ctx context.Context, id string) (domain.BookingRule, error) {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("booking_rules").
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	rules, err := r.queryRules(ctx, selectBuilder, "GetByID")
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrRuleNotFound
	}
	return rules[0], nil
}

// FindWeeklyByProviderAndWeekday находит weekly-правила провайдера на день недели.
// Ожидается не больше одного; несколько — ошибка конфигурации, которую
// разрешает вызывающий (порядок выборки детерминированный).
func (r *Repository) FindWeeklyByProviderAndWeekday(ctx context.Context, providerID string, weekday time.Weekday) ([]domain.BookingRule, error) {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("booking_rules").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"kind":        domain.RuleKindWeekly,
			"weekday":     int(weekday),
			"deleted_at":  nil,
		}).
		OrderBy("created_at ASC, id ASC")

	return r.queryRules(ctx, selectBuilder, "FindWeeklyByProviderAndWeekday")
}

// FindSpecificByProviderAndDate находит specific_date-правила провайдера на дату
func (r *Repository) FindSpecificByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]domain.BookingRule, error) {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("booking_rules").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"kind":        domain.RuleKindSpecificDate,
			"date":        timeutil.DateOnly(date),
			"deleted_at":  nil,
		}).
		OrderBy("created_at ASC, id ASC")

	return r.queryRules(ctx, selectBuilder, "FindSpecificByProviderAndDate")
}

// GetAllByProvider получает все правила провайдера
func (r *Repository) GetAllByProvider(ctx context.Context, providerID string) ([]domain.BookingRule, error) {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("booking_rules").
		Where(squirrel.Eq{"provider_id": providerID, "deleted_at": nil}).
		OrderBy("created_at ASC, id ASC")

	return r.queryRules(ctx, selectBuilder, "GetAllByProvider")
}

// Update перезаписывает изменяемые поля правила (окно и ограничения).
// Вид правила и его идентичность неизменяемы.
func (r *Repository) Update(ctx context.Context, bookingRule domain.BookingRule) (domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row, err := flattenRule(bookingRule)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("booking_rules").
		Set("start_time", row.startTime).
		Set("end_time", row.endTime).
		Set("slot_duration_minutes", row.slotDurationMinutes).
		Set("min_advance_minutes", row.minAdvanceMinutes).
		Set("max_duration_minutes", row.maxDurationMinutes).
		Set("max_bookings_per_day", row.maxBookingsPerDay).
		Set("max_bookings_per_client_per_day", row.maxBookingsPerClientPerDay).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": row.id, "deleted_at": nil}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	row.createdAt = createdAt.Time
	row.updatedAt = updatedAt.Time
	return row.toDomain()
}

// SoftDelete мягко удаляет правило
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_rules").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) queryRules(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]domain.BookingRule, 0)
	for rows.Next() {
		var row ruleRow
		var date sql.NullTime
		var weekday sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&row.id,
			&row.providerID,
			&row.kind,
			&weekday,
			&date,
			&row.startTime,
			&row.endTime,
			&row.slotDurationMinutes,
			&row.minAdvanceMinutes,
			&row.maxDurationMinutes,
			&row.maxBookingsPerDay,
			&row.maxBookingsPerClientPerDay,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if weekday.Valid {
			row.weekday = &weekday.Int64
		}
		if date.Valid {
			d := timeutil.DateOnly(date.Time)
			row.date = &d
		}
		row.createdAt = createdAt.Time
		row.updatedAt = updatedAt.Time

		domainRule, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - %v", ErrScanRow, op, err)
		}
		rules = append(rules, domainRule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return rules, nil
}

// ruleRow плоское представление строки booking_rules
// Конвертация в sum type выполняется на границе репозитория
type ruleRow struct {
	id                         string
	providerID                 string
	kind                       string
	weekday                    *int64
	date                       *time.Time
	startTime                  types.TimeString
	endTime                    types.TimeString
	slotDurationMinutes        int
	minAdvanceMinutes          *int
	maxDurationMinutes         *int
	maxBookingsPerDay          *int
	maxBookingsPerClientPerDay *int
	createdAt                  time.Time
	updatedAt                  time.Time
}

func (row *ruleRow) constraints() domain.RuleConstraints {
	return domain.RuleConstraints{
		MinAdvanceMinutes:          row.minAdvanceMinutes,
		MaxDurationMinutes:         row.maxDurationMinutes,
		MaxBookingsPerDay:          row.maxBookingsPerDay,
		MaxBookingsPerClientPerDay: row.maxBookingsPerClientPerDay,
	}
}

func (row *ruleRow) toDomain() (domain.BookingRule, error) {
	switch domain.RuleKind(row.kind) {
	case domain.RuleKindWeekly:
		if row.weekday == nil {
			return nil, fmt.Errorf("weekly rule %s has no weekday", row.id)
		}
		return domain.WeeklyRule{
			ID:                  row.id,
			ProviderID:          row.providerID,
			Weekday:             time.Weekday(*row.weekday),
			StartTime:           row.startTime,
			EndTime:             row.endTime,
			SlotDurationMinutes: row.slotDurationMinutes,
			RuleConstraints:     row.constraints(),
			CreatedAt:           row.createdAt.UTC(),
			UpdatedAt:           row.updatedAt.UTC(),
		}, nil
	case domain.RuleKindSpecificDate:
		if row.date == nil {
			return nil, fmt.Errorf("specific_date rule %s has no date", row.id)
		}
		return domain.SpecificDateRule{
			ID:                  row.id,
			ProviderID:          row.providerID,
			Date:                *row.date,
			StartTime:           row.startTime,
			EndTime:             row.endTime,
			SlotDurationMinutes: row.slotDurationMinutes,
			RuleConstraints:     row.constraints(),
			CreatedAt:           row.createdAt.UTC(),
			UpdatedAt:           row.updatedAt.UTC(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, row.kind)
	}
}

// flattenRule раскладывает sum type обратно в плоскую строку
func flattenRule(bookingRule domain.BookingRule) (*ruleRow, error) {
	window := bookingRule.Window()
	constraints := bookingRule.Constraints()

	row := &ruleRow{
		id:                         bookingRule.RuleID(),
		providerID:                 bookingRule.Provider(),
		kind:                       string(bookingRule.Kind()),
		startTime:                  window.StartTime,
		endTime:                    window.EndTime,
		slotDurationMinutes:        window.SlotDurationMinutes,
		minAdvanceMinutes:          constraints.MinAdvanceMinutes,
		maxDurationMinutes:         constraints.MaxDurationMinutes,
		maxBookingsPerDay:          constraints.MaxBookingsPerDay,
		maxBookingsPerClientPerDay: constraints.MaxBookingsPerClientPerDay,
	}

	switch rule := bookingRule.(type) {
	case domain.WeeklyRule:
		weekday := int64(rule.Weekday)
		row.weekday = &weekday
	case domain.SpecificDateRule:
		date := timeutil.DateOnly(rule.Date)
		row.date = &date
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, bookingRule)
	}

	return row, nil
}
