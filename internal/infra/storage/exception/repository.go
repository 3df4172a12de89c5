package exception

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

var exceptionColumns = []string{
	"id",
	"provider_id",
	"kind",
	"date",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий исключений из расписания.
// Исключения удаляются жёстко: в отличие от правил, на них
// ничего не ссылается после удаления.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое исключение (block или override)
func (r *Repository) Create(ctx context.Context, exc domain.BookingException) (domain.BookingException, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row, err := flattenException(exc)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("booking_exceptions").
		Columns("id", "provider_id", "kind", "date", "start_time", "end_time", "slot_duration_minutes", "reason").
		Values(row.id, row.providerID, row.kind, row.date, row.startTime, row.endTime, row.slotDurationMinutes, row.reason).
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

// GetByID получает исключение по ID
func (r *Repository) GetByID(ctx context.Context, id string) (domain.BookingException, error) {
	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From("booking_exceptions").
		Where(squirrel.Eq{"id": id})

	exceptions, err := r.queryExceptions(ctx, selectBuilder, "GetByID")
	if err != nil {
		return nil, err
	}
	if len(exceptions) == 0 {
		return nil, ErrExceptionNotFound
	}
	return exceptions[0], nil
}

// FindByProviderAndDate находит исключения провайдера на конкретную дату.
// Block-исключения идут первыми: у них абсолютный приоритет.
func (r *Repository) FindByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]domain.BookingException, error) {
	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From("booking_exceptions").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"date":        timeutil.DateOnly(date),
		}).
		OrderBy("kind ASC, created_at ASC, id ASC")

	return r.queryExceptions(ctx, selectBuilder, "FindByProviderAndDate")
}

// GetAllByProvider получает все исключения провайдера
func (r *Repository) GetAllByProvider(ctx context.Context, providerID string) ([]domain.BookingException, error) {
	selectBuilder := psqlbuilder.Select(exceptionColumns...).
		From("booking_exceptions").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("date ASC, created_at ASC, id ASC")

	return r.queryExceptions(ctx, selectBuilder, "GetAllByProvider")
}

// Delete жёстко удаляет исключение
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_exceptions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrExceptionNotFound
	}

	return nil
}

func (r *Repository) queryExceptions(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]domain.BookingException, error) {
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

	exceptions := make([]domain.BookingException, 0)
	for rows.Next() {
		var row exceptionRow
		var date sql.NullTime
		var startTime, endTime sql.NullString
		var slotDuration sql.NullInt64
		var reason sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&row.id,
			&row.providerID,
			&row.kind,
			&date,
			&startTime,
			&endTime,
			&slotDuration,
			&reason,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		row.date = timeutil.DateOnly(date.Time)
		if startTime.Valid {
			ts := types.TimeString(startTime.String)
			row.startTime = &ts
		}
		if endTime.Valid {
			ts := types.TimeString(endTime.String)
			row.endTime = &ts
		}
		if slotDuration.Valid {
			d := int(slotDuration.Int64)
			row.slotDurationMinutes = &d
		}
		if reason.Valid {
			row.reason = &reason.String
		}
		row.createdAt = createdAt.Time
		row.updatedAt = updatedAt.Time

		domainExc, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s - %v", ErrScanRow, op, err)
		}
		exceptions = append(exceptions, domainExc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return exceptions, nil
}

// exceptionRow плоское представление строки booking_exceptions
type exceptionRow struct {
	id                  string
	providerID          string
	kind                string
	date                time.Time
	startTime           *types.TimeString
	endTime             *types.TimeString
	slotDurationMinutes *int
	reason              *string
	createdAt           time.Time
	updatedAt           time.Time
}

func (row *exceptionRow) toDomain() (domain.BookingException, error) {
	switch domain.ExceptionKind(row.kind) {
	case domain.ExceptionKindBlock:
		return domain.BlockException{
			ID:         row.id,
			ProviderID: row.providerID,
			Date:       row.date,
			Reason:     row.reason,
			CreatedAt:  row.createdAt.UTC(),
			UpdatedAt:  row.updatedAt.UTC(),
		}, nil
	case domain.ExceptionKindOverride:
		if row.startTime == nil || row.endTime == nil || row.slotDurationMinutes == nil {
			return nil, fmt.Errorf("override exception %s has no window", row.id)
		}
		return domain.OverrideException{
			ID:                  row.id,
			ProviderID:          row.providerID,
			Date:                row.date,
			StartTime:           *row.startTime,
			EndTime:             *row.endTime,
			SlotDurationMinutes: *row.slotDurationMinutes,
			Reason:              row.reason,
			CreatedAt:           row.createdAt.UTC(),
			UpdatedAt:           row.updatedAt.UTC(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, row.kind)
	}
}

// flattenException раскладывает sum type обратно в плоскую строку
func flattenException(exc domain.BookingException) (*exceptionRow, error) {
	row := &exceptionRow{
		id:         exc.ExceptionID(),
		providerID: exc.Provider(),
		kind:       string(exc.Kind()),
		date:       timeutil.DateOnly(exc.ExceptionDate()),
	}

	switch e := exc.(type) {
	case domain.BlockException:
		row.reason = e.Reason
	case domain.OverrideException:
		row.startTime = &e.StartTime
		row.endTime = &e.EndTime
		row.slotDurationMinutes = &e.SlotDurationMinutes
		row.reason = e.Reason
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, exc)
	}

	return row, nil
}
