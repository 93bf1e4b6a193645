package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/pkg/psqlbuilder"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

var bookingColumns = []string{
	"id",
	"company_id",
	"guide_id",
	"family_id",
	"excursion_id",
	"excursion_title",
	"hotel_id",
	"hotel_name",
	"region_name",
	"pickup_point_id",
	"pickup_point_name",
	"pickup_time",
	"pickup_lat",
	"pickup_lng",
	"pickup_address",
	"travelers_csv",
	"status",
	"batch_code",
	"sent_at",
	"sent_to_email",
	"excursion_language",
	"room_number",
	"price_source",
	"price_per_adult",
	"price_per_child",
	"date",
	"adults",
	"children",
	"infants",
	"gross_total",
	"net_total",
	"commission",
	"cancelled_at",
	"cancel_reason",
	"payment_method",
	"booking_code",
	"created_at",
}

// Repository репозиторий продаж экскурсий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
// Если в контексте передана активная транзакция, использует её -
// создание брони с анти-дублями обязано идти в одной транзакции
// со сканом «занятых» броней семьи
func (r *Repository) Create(ctx context.Context, b *domain.BookingSale) (*domain.BookingSale, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_sales").
		Columns(
			"company_id",
			"guide_id",
			"family_id",
			"excursion_id",
			"excursion_title",
			"hotel_id",
			"hotel_name",
			"region_name",
			"pickup_point_id",
			"pickup_point_name",
			"pickup_time",
			"pickup_lat",
			"pickup_lng",
			"pickup_address",
			"travelers_csv",
			"status",
			"excursion_language",
			"room_number",
			"price_source",
			"price_per_adult",
			"price_per_child",
			"date",
			"adults",
			"children",
			"infants",
			"gross_total",
			"net_total",
			"commission",
			"payment_method",
			"booking_code",
		).
		Values(
			b.CompanyID,
			b.GuideID,
			b.FamilyID,
			b.ExcursionID,
			b.ExcursionTitle,
			b.HotelID,
			b.HotelName,
			b.RegionName,
			b.PickupPointID,
			b.PickupPointName,
			b.PickupTime,
			b.PickupLat,
			b.PickupLng,
			b.PickupAddress,
			b.TravelersCSV,
			b.Status,
			b.ExcursionLanguage,
			b.RoomNumber,
			b.PriceSource,
			b.PricePerAdult,
			b.PricePerChild,
			b.Date,
			b.Adults,
			b.Children,
			b.Infants,
			b.GrossTotal,
			b.NetTotal,
			b.Commission,
			b.PaymentMethod,
			b.BookingCode,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateCode
		}
		// Конфликт сериализации отдаем как есть, txmanager его классифицирует
		if txmanager.IsSerialization(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingSale, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("booking_sales").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// GetBusySiblings получает «занятые» брони семьи на дату
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы две конкурентные
// проверки на дубли не прошли одновременно
func (r *Repository) GetBusySiblings(ctx context.Context, filter domain.SiblingFilter) ([]*domain.BookingSale, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("booking_sales").
		Where(squirrel.Eq{"family_id": filter.FamilyID}).
		Where(squirrel.Eq{"date": filter.Date}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("id ASC")

	if txmanager.InTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusySiblings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerialization(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: GetBusySiblings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetWithFilter получает брони с фильтрацией по компании/семье/периоду/статусу
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingSale, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("booking_sales").
		OrderBy("date DESC, id DESC")

	if filter.CompanyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"company_id": *filter.CompanyID})
	}
	if filter.FamilyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"family_id": *filter.FamilyID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update обновляет редактируемые поля брони (только для DRAFT, проверяет сервис)
func (r *Repository) Update(ctx context.Context, b *domain.BookingSale) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_sales").
		Set("excursion_id", b.ExcursionID).
		Set("excursion_title", b.ExcursionTitle).
		Set("hotel_id", b.HotelID).
		Set("hotel_name", b.HotelName).
		Set("region_name", b.RegionName).
		Set("pickup_point_id", b.PickupPointID).
		Set("pickup_point_name", b.PickupPointName).
		Set("pickup_time", b.PickupTime).
		Set("pickup_lat", b.PickupLat).
		Set("pickup_lng", b.PickupLng).
		Set("pickup_address", b.PickupAddress).
		Set("travelers_csv", b.TravelersCSV).
		Set("excursion_language", b.ExcursionLanguage).
		Set("room_number", b.RoomNumber).
		Set("price_source", b.PriceSource).
		Set("price_per_adult", b.PricePerAdult).
		Set("price_per_child", b.PricePerChild).
		Set("date", b.Date).
		Set("adults", b.Adults).
		Set("children", b.Children).
		Set("infants", b.Infants).
		Set("gross_total", b.GrossTotal).
		Set("net_total", b.NetTotal).
		Set("commission", b.Commission).
		Set("payment_method", b.PaymentMethod).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "Update")
}

// UpdateStatus обновляет статус брони
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_sales").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "UpdateStatus")
}

// MarkSent переводит черновик в PENDING после подтвержденной отправки письма
func (r *Repository) MarkSent(ctx context.Context, id int64, batchCode, sentTo string) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_sales").
		Set("status", domain.StatusPending).
		Set("batch_code", batchCode).
		Set("sent_to_email", sentTo).
		Set("sent_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSent - execute update: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "MarkSent")
}

// Cancel аннулирует бронь с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_sales").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "Cancel")
}

// Delete физически удаляет бронь (только черновики, проверяет сервис)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_sales").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	return checkAffected(result, "Delete")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.BookingSale, error) {
	var b domain.BookingSale
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CompanyID,
		&b.GuideID,
		&b.FamilyID,
		&b.ExcursionID,
		&b.ExcursionTitle,
		&b.HotelID,
		&b.HotelName,
		&b.RegionName,
		&b.PickupPointID,
		&b.PickupPointName,
		&b.PickupTime,
		&b.PickupLat,
		&b.PickupLng,
		&b.PickupAddress,
		&b.TravelersCSV,
		&b.Status,
		&b.BatchCode,
		&b.SentAt,
		&b.SentToEmail,
		&b.ExcursionLanguage,
		&b.RoomNumber,
		&b.PriceSource,
		&b.PricePerAdult,
		&b.PricePerChild,
		&b.Date,
		&b.Adults,
		&b.Children,
		&b.Infants,
		&b.GrossTotal,
		&b.NetTotal,
		&b.Commission,
		&b.CancelledAt,
		&b.CancelReason,
		&b.PaymentMethod,
		&b.BookingCode,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedAt = createdAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.BookingSale, error) {
	bookings := make([]*domain.BookingSale, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
