package netprice

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

var netPriceColumns = []string{
	"id",
	"company_id",
	"excursion_id",
	"region_slug",
	"currency",
	"net_per_adult",
	"net_per_child",
	"child_discount_pct",
	"valid_from",
	"valid_to",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий нетто-цен экскурсий
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория нетто-цен
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveCandidates получает активные записи для экскурсии по ярусам специфичности:
// (company, region) -> (company, "") -> (nil, region) -> (nil, "")
// Порядок слайса соответствует убыванию специфичности, внутри яруса - по id
func (r *Repository) GetActiveCandidates(ctx context.Context, companyID *int64, excursionID int64, regionSlug string) ([]*domain.ExcursionNetPrice, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	tiers := make([]squirrel.Sqlizer, 0, 4)
	if companyID != nil {
		if regionSlug != "" {
			tiers = append(tiers, squirrel.Eq{"company_id": *companyID, "region_slug": regionSlug})
		}
		tiers = append(tiers, squirrel.Eq{"company_id": *companyID, "region_slug": ""})
	}
	if regionSlug != "" {
		tiers = append(tiers, squirrel.Eq{"company_id": nil, "region_slug": regionSlug})
	}
	tiers = append(tiers, squirrel.Eq{"company_id": nil, "region_slug": ""})

	result := make([]*domain.ExcursionNetPrice, 0)
	for _, tier := range tiers {
		query, args, err := psqlbuilder.Select(netPriceColumns...).
			From("excursion_net_prices").
			Where(squirrel.Eq{"excursion_id": excursionID, "is_active": true}).
			Where(tier).
			OrderBy("id ASC").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveCandidates - build select query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveCandidates - execute query: %v", ErrExecQuery, err)
		}

		batch, err := scanNetPrices(rows)
		rows.Close()
		if err != nil {
			return nil, err
		}
		result = append(result, batch...)
	}

	return result, nil
}

// ListByExcursion получает все записи нетто-цен экскурсии (для админ-ручек)
func (r *Repository) ListByExcursion(ctx context.Context, excursionID int64) ([]*domain.ExcursionNetPrice, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(netPriceColumns...).
		From("excursion_net_prices").
		Where(squirrel.Eq{"excursion_id": excursionID}).
		OrderBy("region_slug ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByExcursion - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByExcursion - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanNetPrices(rows)
}

// Upsert создает или обновляет запись нетто-цены по ключу (company, excursion, region)
// Ключ в схеме объявлен UNIQUE NULLS NOT DISTINCT, поэтому конфликт
// срабатывает и для ярусов без company_id
func (r *Repository) Upsert(ctx context.Context, p *domain.ExcursionNetPrice) (*domain.ExcursionNetPrice, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("excursion_net_prices").
		Columns(
			"company_id",
			"excursion_id",
			"region_slug",
			"currency",
			"net_per_adult",
			"net_per_child",
			"child_discount_pct",
			"valid_from",
			"valid_to",
			"is_active",
		).
		Values(
			p.CompanyID,
			p.ExcursionID,
			p.RegionSlug,
			p.Currency,
			p.NetPerAdult,
			p.NetPerChild,
			p.ChildDiscountPct,
			p.ValidFrom,
			p.ValidTo,
			p.IsActive,
		).
		Suffix(`ON CONFLICT (company_id, excursion_id, region_slug) DO UPDATE SET
			currency = EXCLUDED.currency,
			net_per_adult = EXCLUDED.net_per_adult,
			net_per_child = EXCLUDED.net_per_child,
			child_discount_pct = EXCLUDED.child_discount_pct,
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

func scanNetPrices(rows *sql.Rows) ([]*domain.ExcursionNetPrice, error) {
	prices := make([]*domain.ExcursionNetPrice, 0)

	for rows.Next() {
		var p domain.ExcursionNetPrice
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.CompanyID,
			&p.ExcursionID,
			&p.RegionSlug,
			&p.Currency,
			&p.NetPerAdult,
			&p.NetPerChild,
			&p.ChildDiscountPct,
			&p.ValidFrom,
			&p.ValidTo,
			&p.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanNetPrices - scan row: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time

		prices = append(prices, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanNetPrices - rows error: %v", ErrScanRow, err)
	}

	return prices, nil
}
