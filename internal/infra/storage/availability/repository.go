package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

// Repository репозиторий расписания провайдеров (provider_availability)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает запись (provider, day) или целиком заменяет её набор слотов
// Выполняется одним запросом, поэтому параллельные вызовы не создают дубликатов
func (r *Repository) Upsert(ctx context.Context, availability *domain.ProviderAvailability) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_availability").
		Columns(
			"provider_id",
			"day",
			"time_slots",
		).
		Values(
			availability.ProviderID,
			availability.Day,
			availability.TimeSlots,
		).
		Suffix("ON CONFLICT (provider_id, day) DO UPDATE SET time_slots = EXCLUDED.time_slots, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	availability.CreatedAt = createdAt.Time
	availability.UpdatedAt = updatedAt.Time

	return availability, nil
}

// GetByProviderAndDay получает слоты провайдера на день недели
// Внутри транзакции строка блокируется (FOR UPDATE) - так удаление слота не гоняется с бронированием
func (r *Repository) GetByProviderAndDay(ctx context.Context, providerID int64, day domain.Weekday) (*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"provider_id",
		"day",
		"time_slots",
		"created_at",
		"updated_at",
	).
		From("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID, "day": day})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDay - build select query: %w", ErrBuildQuery, err)
	}

	availability, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDay - scan availability: %w", ErrScanRow, err)
	}

	return availability, nil
}

// GetAllByProvider получает все дни расписания провайдера, с понедельника по воскресенье
func (r *Repository) GetAllByProvider(ctx context.Context, providerID int64) ([]*domain.ProviderAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"day",
		"time_slots",
		"created_at",
		"updated_at",
	).
		From("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ProviderAvailability, 0, len(domain.Weekdays))
	for rows.Next() {
		availability, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByProvider - scan row: %w", ErrScanRow, err)
		}
		result = append(result, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - rows error: %w", ErrScanRow, err)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Day.ISONumber() < result[j].Day.ISONumber()
	})

	return result, nil
}

// UpdateSlots сохраняет новый набор слотов существующей записи
func (r *Repository) UpdateSlots(ctx context.Context, id int64, slots domain.TimeSlots) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("provider_availability").
		Set("time_slots", slots).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row rowScanner) (*domain.ProviderAvailability, error) {
	var availability domain.ProviderAvailability
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&availability.ID,
		&availability.ProviderID,
		&availability.Day,
		&availability.TimeSlots,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	availability.CreatedAt = createdAt.Time
	availability.UpdatedAt = updatedAt.Time

	return &availability, nil
}
