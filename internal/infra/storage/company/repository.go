package company

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/pkg/psqlbuilder"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

var companyColumns = []string{
	"id",
	"name",
	"slug",
	"email_for_orders",
	"is_active",
}

// Repository репозиторий компаний-партнёров
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория компаний
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает компанию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(companyColumns...).
		From("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Company
	var email sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&email,
		&c.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan company: %v", ErrScanRow, err)
	}
	c.EmailForOrders = email.String

	return &c, nil
}

// ListActive получает список активных компаний (справочник для фронта)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Company, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(companyColumns...).
		From("companies").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	companies := make([]*domain.Company, 0)
	for rows.Next() {
		var c domain.Company
		var email sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &email, &c.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		c.EmailForOrders = email.String
		companies = append(companies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return companies, nil
}
