package family

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/pkg/psqlbuilder"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

var familyColumns = []string{
	"id",
	"ref_code",
	"hotel_id",
	"hotel_name",
	"region_name",
	"arrival_date",
	"departure_date",
	"phone",
	"email",
	"comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий семейных броней
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория семейных броней
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает семейную бронь
func (r *Repository) Create(ctx context.Context, f *domain.FamilyBooking) (*domain.FamilyBooking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("family_bookings").
		Columns(
			"ref_code",
			"hotel_id",
			"hotel_name",
			"region_name",
			"arrival_date",
			"departure_date",
			"phone",
			"email",
			"comment",
		).
		Values(
			f.RefCode,
			f.HotelID,
			f.HotelName,
			f.RegionName,
			f.ArrivalDate,
			f.DepartureDate,
			f.Phone,
			f.Email,
			f.Comment,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetByID получает семейную бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(familyColumns...).
		From("family_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.FamilyBooking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.RefCode,
		&f.HotelID,
		&f.HotelName,
		&f.RegionName,
		&f.ArrivalDate,
		&f.DepartureDate,
		&f.Phone,
		&f.Email,
		&f.Comment,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFamilyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan family: %v", ErrScanRow, err)
	}
	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// UpdateRegionName заполняет region_name семейной брони (back-fill из каталога)
func (r *Repository) UpdateRegionName(ctx context.Context, id int64, regionName string) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("family_bookings").
		Set("region_name", regionName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRegionName - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRegionName - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRegionName - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFamilyNotFound
	}
	return nil
}
