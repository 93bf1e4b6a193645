package netprice

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

func priceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_id", "excursion_id", "region_slug", "currency",
		"net_per_adult", "net_per_child", "child_discount_pct",
		"valid_from", "valid_to", "is_active", "created_at", "updated_at",
	})
}

func TestGetActiveCandidatesQueriesTiersInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	companyID := int64(5)

	// ярус (компания, регион)
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, companyID, "cds").
		WillReturnRows(priceRows().
			AddRow(4, companyID, 7, "cds", "EUR", 25.0, nil, 25.0, nil, nil, true, now, now))
	// ярус (компания, все регионы)
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, companyID, "").
		WillReturnRows(priceRows())
	// ярус (все компании, регион)
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, "cds").
		WillReturnRows(priceRows())
	// ярус (все компании, все регионы)
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, "").
		WillReturnRows(priceRows().
			AddRow(1, nil, 7, "", "EUR", 40.0, nil, 25.0, nil, nil, true, now, now))

	repo := NewRepository(db)
	prices, err := repo.GetActiveCandidates(context.Background(), &companyID, 7, "cds")
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, int64(4), prices[0].ID, "специфичный ярус идет первым")
	assert.Equal(t, int64(1), prices[1].ID)
	require.NotNil(t, prices[0].NetPerAdult)
	assert.Equal(t, 25.0, *prices[0].NetPerAdult)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCandidatesWithoutCompanySkipsCompanyTiers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, "cds").
		WillReturnRows(priceRows())
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7), true, "").
		WillReturnRows(priceRows())

	repo := NewRepository(db)
	prices, err := repo.GetActiveCandidates(context.Background(), nil, 7, "cds")
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertReturnsTimestamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO excursion_net_prices").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(10, now, now))

	adult := 30.0
	repo := NewRepository(db)
	saved, err := repo.Upsert(context.Background(), &domain.ExcursionNetPrice{
		ExcursionID:      7,
		RegionSlug:       "cds",
		Currency:         "EUR",
		NetPerAdult:      &adult,
		ChildDiscountPct: 25,
		IsActive:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByExcursion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM excursion_net_prices").
		WithArgs(int64(7)).
		WillReturnRows(priceRows().
			AddRow(1, nil, 7, "", "EUR", 40.0, 30.0, 25.0, nil, nil, true, now, now).
			AddRow(2, nil, 7, "cds", "EUR", 35.0, nil, 25.0, nil, nil, false, now, now))

	repo := NewRepository(db)
	prices, err := repo.ListByExcursion(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.Equal(t, "cds", prices[1].RegionSlug)
	assert.False(t, prices[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
