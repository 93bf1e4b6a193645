package netprices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

type stubNetPriceRepo struct {
	candidates []*domain.ExcursionNetPrice
	err        error
}

func (r *stubNetPriceRepo) GetActiveCandidates(ctx context.Context, companyID *int64, excursionID int64, regionSlug string) ([]*domain.ExcursionNetPrice, error) {
	return r.candidates, r.err
}

func (r *stubNetPriceRepo) ListByExcursion(ctx context.Context, excursionID int64) ([]*domain.ExcursionNetPrice, error) {
	return r.candidates, r.err
}

func (r *stubNetPriceRepo) Upsert(ctx context.Context, p *domain.ExcursionNetPrice) (*domain.ExcursionNetPrice, error) {
	if r.err != nil {
		return nil, r.err
	}
	saved := *p
	saved.ID = 100
	return &saved, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func day(s string) *time.Time {
	t, _ := time.Parse(domain.DateFormat, s)
	return &t
}

func TestResolvePrefersMoreSpecificTier(t *testing.T) {
	// Слайс в порядке репозитория: по убыванию специфичности
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 4, CompanyID: i64(5), ExcursionID: 7, RegionSlug: "cds", NetPerAdult: f64(25), Currency: "EUR"},
		{ID: 3, CompanyID: i64(5), ExcursionID: 7, NetPerAdult: f64(30), Currency: "EUR"},
		{ID: 2, ExcursionID: 7, RegionSlug: "cds", NetPerAdult: f64(35), Currency: "EUR"},
		{ID: 1, ExcursionID: 7, NetPerAdult: f64(40), Currency: "EUR"},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), i64(5), 7, "CDS", time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Record.ID, "при равной свежести выигрывает специфичный ярус")
	assert.Equal(t, 25.0, res.NetPerAdult)
}

func TestResolveSkipsRecordsOutsideValidityWindow(t *testing.T) {
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 1, CompanyID: i64(5), ExcursionID: 7, NetPerAdult: f64(30),
			ValidFrom: day("2026-09-01"), ValidTo: day("2026-09-30")},
		{ID: 2, ExcursionID: 7, NetPerAdult: f64(40), Currency: "EUR", ValidFrom: day("2026-01-01")},
	}}
	svc := NewService(repo, nopLogger{})

	date, _ := time.Parse(domain.DateFormat, "2026-08-15")
	res, err := svc.Resolve(context.Background(), i64(5), 7, "", date)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Record.ID, "запись компании вне окна, выигрывает общая")

	inWindow, _ := time.Parse(domain.DateFormat, "2026-09-30")
	res, err = svc.Resolve(context.Background(), i64(5), 7, "", inWindow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Record.ID, "граница valid_to включительная")
}

func TestResolvePrefersMostRecentValidFrom(t *testing.T) {
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 1, ExcursionID: 7, NetPerAdult: f64(40), ValidFrom: day("2026-01-01")},
		{ID: 2, ExcursionID: 7, NetPerAdult: f64(42), ValidFrom: day("2026-06-01")},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), nil, 7, "", *day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Record.ID)
}

func TestResolveFresherValidFromBeatsSpecificity(t *testing.T) {
	// Специфичный ярус со старой valid_from проигрывает более свежей общей записи
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 1, CompanyID: i64(5), ExcursionID: 7, RegionSlug: "cds", NetPerAdult: f64(25), ValidFrom: day("2026-01-01")},
		{ID: 2, ExcursionID: 7, NetPerAdult: f64(40), ValidFrom: day("2026-06-01")},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), i64(5), 7, "cds", *day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Record.ID)
	assert.Equal(t, 40.0, res.NetPerAdult)
}

func TestResolveNullValidFromCountsAsQueryDate(t *testing.T) {
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 1, ExcursionID: 7, NetPerAdult: f64(42), ValidFrom: day("2026-06-01")},
		{ID: 2, ExcursionID: 7, NetPerAdult: f64(45)},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), nil, 7, "", *day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Record.ID, "запись без valid_from свежее датированных")
}

func TestResolveTieBreakKeepsSmallestID(t *testing.T) {
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 10, ExcursionID: 7, NetPerAdult: f64(40), ValidFrom: day("2026-01-01")},
		{ID: 11, ExcursionID: 7, NetPerAdult: f64(50), ValidFrom: day("2026-01-01")},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), nil, 7, "", *day("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.Record.ID)
}

func TestResolveChildDiscountDefault(t *testing.T) {
	repo := &stubNetPriceRepo{candidates: []*domain.ExcursionNetPrice{
		{ID: 1, ExcursionID: 7, NetPerAdult: f64(100), Currency: "EUR"},
	}}
	svc := NewService(repo, nopLogger{})

	res, err := svc.Resolve(context.Background(), nil, 7, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.NetPerAdult)
	assert.Equal(t, 75.0, res.NetPerChild, "детская цена по умолчанию -25% от взрослой")
}

func TestResolveNoNetPrice(t *testing.T) {
	svc := NewService(&stubNetPriceRepo{}, nopLogger{})

	_, err := svc.Resolve(context.Background(), nil, 7, "", time.Now())
	assert.ErrorIs(t, err, ErrNoNetPrice)
}

func TestResolveInvalidInput(t *testing.T) {
	svc := NewService(&stubNetPriceRepo{}, nopLogger{})

	_, err := svc.Resolve(context.Background(), nil, 0, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertDefaults(t *testing.T) {
	svc := NewService(&stubNetPriceRepo{}, nopLogger{})

	saved, err := svc.Upsert(context.Background(), &domain.ExcursionNetPrice{
		ExcursionID: 7,
		NetPerAdult: f64(30),
		RegionSlug:  "Costa del Sol",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", saved.Currency)
	assert.Equal(t, 25.0, saved.ChildDiscountPct)
	assert.Equal(t, "costa-del-sol", saved.RegionSlug)
}

func TestUpsertRequiresNetPerAdult(t *testing.T) {
	svc := NewService(&stubNetPriceRepo{}, nopLogger{})

	_, err := svc.Upsert(context.Background(), &domain.ExcursionNetPrice{ExcursionID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeRegion(t *testing.T) {
	assert.Equal(t, "costa-del-sol", NormalizeRegion("Costa del Sol"))
	assert.Equal(t, "malaga", NormalizeRegion("Málaga"))
	assert.Equal(t, "", NormalizeRegion(""))
}
