package booking

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
)

var bookingColumns = []string{
	"id",
	"provider_id",
	"client_id",
	"start_at",
	"end_at",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// ID генерируется на уровне usecase (внедрённым генератором), а не БД.
// Если в контексте есть активная транзакция, вставка выполняется в ней —
// это обязательная часть атомарного admission-пути.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"provider_id",
			"client_id",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			booking.ID,
			booking.ProviderID,
			booking.ClientID,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetConfirmedByProviderAndDate получает подтверждённые бронирования провайдера
// на календарный день даты date (UTC), отсортированные по времени начала.
//
// Внутри транзакции добавляет FOR UPDATE: admission-путь блокирует строки
// дня, чтобы конкурирующие создания бронирований сериализовались.
func (r *Repository) GetConfirmedByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]*domain.Booking, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID, "status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.queryBookings(ctx, selectBuilder, "GetConfirmedByProviderAndDate")
}

// GetConfirmedByProviderClientAndDate получает подтверждённые бронирования
// пары (провайдер, клиент) на календарный день. Используется для проверки
// клиентской дневной квоты внутри admission-транзакции.
func (r *Repository) GetConfirmedByProviderClientAndDate(ctx context.Context, providerID, clientID string, date time.Time) ([]*domain.Booking, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"client_id":   clientID,
			"status":      domain.StatusConfirmed,
		}).
		Where(squirrel.GtOrEq{"start_at": dayStart}).
		Where(squirrel.Lt{"start_at": dayEnd}).
		OrderBy("start_at ASC")

	return r.queryBookings(ctx, selectBuilder, "GetConfirmedByProviderClientAndDate")
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией:
// по клиенту, периоду, статусу и включению терминальных статусов
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}

	if filter.StartDate != nil {
		dayStart, _ := timeutil.DayBounds(*filter.StartDate)
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": dayStart})
	}
	if filter.EndDate != nil {
		_, dayEnd := timeutil.DayBounds(*filter.EndDate)
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": dayEnd})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusConfirmed})
	}

	selectBuilder = selectBuilder.OrderBy("start_at DESC")

	return r.queryBookings(ctx, selectBuilder, "GetByProviderWithFilter")
}

// GetByClient получает историю бронирований клиента по всем провайдерам
// Опционально фильтрует по статусу
func (r *Repository) GetByClient(ctx context.Context, clientID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.queryBookings(ctx, selectBuilder, "GetByClient")
}

// UpdateStatus обновляет статус бронирования
// Допустимость перехода проверяется на уровне сервиса
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id string, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// queryBookings выполняет select и сканирует результат
func (r *Repository) queryBookings(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
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

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

// execExpectingRow выполняет update, требуя ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
// Все timestamps нормализуются в UTC
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ProviderID,
		&booking.ClientID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartAt = booking.StartAt.UTC()
	booking.EndAt = booking.EndAt.UTC()
	booking.CreatedAt = createdAt.Time.UTC()
	booking.UpdatedAt = updatedAt.Time.UTC()

	return &booking, nil
}
