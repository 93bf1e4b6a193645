package traveler

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

var travelerColumns = []string{
	"id",
	"family_id",
	"first_name",
	"last_name",
	"middle_name",
	"dob",
	"nationality",
	"passport",
	"passport_expiry",
	"phone",
	"email",
	"note",
	"gender",
	"doc_type",
	"doc_expiry",
}

// Repository репозиторий туристов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория туристов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет туриста в семью
// ФИО должны быть нормализованы до вызова (domain.Traveler.Normalize)
func (r *Repository) Create(ctx context.Context, t *domain.Traveler) (*domain.Traveler, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Insert("travelers").
		Columns(
			"family_id",
			"first_name",
			"last_name",
			"middle_name",
			"dob",
			"nationality",
			"passport",
			"passport_expiry",
			"phone",
			"email",
			"note",
			"gender",
			"doc_type",
			"doc_expiry",
		).
		Values(
			t.FamilyID,
			t.FirstName,
			t.LastName,
			t.MiddleName,
			t.DOB,
			t.Nationality,
			t.Passport,
			t.PassportExpiry,
			t.Phone,
			t.Email,
			t.Note,
			t.Gender,
			t.DocType,
			t.DocExpiry,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrTravelerExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает туриста по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Traveler, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(travelerColumns...).
		From("travelers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	t, err := scanTraveler(row)
	if err == sql.ErrNoRows {
		return nil, ErrTravelerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan traveler: %v", ErrScanRow, err)
	}
	return t, nil
}

// GetByFamilyID получает всех туристов семьи
func (r *Repository) GetByFamilyID(ctx context.Context, familyID int64) ([]*domain.Traveler, error) {
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(travelerColumns...).
		From("travelers").
		Where(squirrel.Eq{"family_id": familyID}).
		OrderBy("last_name ASC, first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFamilyID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFamilyID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	travelers := make([]*domain.Traveler, 0)
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFamilyID - scan row: %v", ErrScanRow, err)
		}
		travelers = append(travelers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFamilyID - rows error: %v", ErrScanRow, err)
	}

	return travelers, nil
}

// GetByIDs получает туристов по списку id (для писем и сообщений о конфликтах)
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Traveler, error) {
	if len(ids) == 0 {
		return []*domain.Traveler{}, nil
	}
	executor := txmanager.ExecutorFromContext(ctx, r.db)

	query, args, err := psqlbuilder.Select(travelerColumns...).
		From("travelers").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	travelers := make([]*domain.Traveler, 0, len(ids))
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		travelers = append(travelers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return travelers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTraveler(row rowScanner) (*domain.Traveler, error) {
	var t domain.Traveler
	err := row.Scan(
		&t.ID,
		&t.FamilyID,
		&t.FirstName,
		&t.LastName,
		&t.MiddleName,
		&t.DOB,
		&t.Nationality,
		&t.Passport,
		&t.PassportExpiry,
		&t.Phone,
		&t.Email,
		&t.Note,
		&t.Gender,
		&t.DocType,
		&t.DocExpiry,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
