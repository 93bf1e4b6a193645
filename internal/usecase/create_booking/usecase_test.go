package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/service/netprices"
	"github.com/m4rkov/CSI-SalesService/internal/service/pricing"
	"github.com/m4rkov/CSI-SalesService/internal/service/regions"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

type stubBookingRepo struct {
	siblings  []*domain.BookingSale
	created   *domain.BookingSale
	createErr error
}

func (r *stubBookingRepo) Create(ctx context.Context, b *domain.BookingSale) (*domain.BookingSale, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := *b
	saved.ID = 42
	saved.CreatedAt = time.Now()
	r.created = &saved
	return &saved, nil
}

func (r *stubBookingRepo) GetBusySiblings(ctx context.Context, filter domain.SiblingFilter) ([]*domain.BookingSale, error) {
	return r.siblings, nil
}

type stubCompanyRepo struct {
	company *domain.Company
	err     error
}

func (r *stubCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	return r.company, r.err
}

type stubFamilyRepo struct {
	family *domain.FamilyBooking
	err    error
}

func (r *stubFamilyRepo) GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error) {
	return r.family, r.err
}

type stubRegionResolver struct {
	region string
	ok     bool
	calls  int
}

func (r *stubRegionResolver) Resolve(ctx context.Context, probe regions.Probe) (string, bool) {
	r.calls++
	return r.region, r.ok
}

type stubBackfiller struct {
	familyID int64
	region   string
	calls    int
}

func (b *stubBackfiller) BackfillRegion(ctx context.Context, familyID int64, regionName string) {
	b.calls++
	b.familyID = familyID
	b.region = regionName
}

type stubPricingEngine struct {
	result *pricing.QuoteResult
	err    error
	calls  int
}

func (e *stubPricingEngine) Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.QuoteResult, error) {
	e.calls++
	return e.result, e.err
}

type stubNetPriceResolver struct {
	res   *netprices.Resolution
	err   error
	calls int
}

func (r *stubNetPriceResolver) Resolve(ctx context.Context, companyID *int64, excursionID int64, regionName string, date time.Time) (*netprices.Resolution, error) {
	r.calls++
	return r.res, r.err
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

type fixture struct {
	bookingRepo *stubBookingRepo
	companyRepo *stubCompanyRepo
	familyRepo  *stubFamilyRepo
	resolver    *stubRegionResolver
	backfiller  *stubBackfiller
	pricing     *stubPricingEngine
	netPrices   *stubNetPriceResolver
	uc          *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &stubBookingRepo{},
		companyRepo: &stubCompanyRepo{company: &domain.Company{ID: 1, Name: "SMC", EmailForOrders: "orders@smc.example", IsActive: true}},
		familyRepo:  &stubFamilyRepo{family: &domain.FamilyBooking{ID: 9, HotelName: "Sol Don Pablo"}},
		resolver:    &stubRegionResolver{region: "CDS", ok: true},
		backfiller:  &stubBackfiller{},
		pricing: &stubPricingEngine{result: &pricing.QuoteResult{
			Gross: 120, Currency: "EUR", Source: pricing.SourcePickup,
			PerAdult: f64(50), PerChild: f64(20),
		}},
		netPrices: &stubNetPriceResolver{err: netprices.ErrNoNetPrice},
	}
	f.uc = NewUseCase(
		f.bookingRepo, f.companyRepo, f.familyRepo,
		f.resolver, f.backfiller, f.pricing, f.netPrices,
		stubTxManager{}, nopLogger{},
	)
	return f
}

func validRequest() *Request {
	return &Request{
		CompanyID:   1,
		GuideID:     2,
		ExcursionID: 7,
		FamilyID:    i64(9),
		HotelName:   "Sol Don Pablo",
		Date:        "2026-09-10",
		Adults:      2,
		Children:    1,
		TravelerIDs: []int64{1, 2, 3},
	}
}

func TestExecuteCreatesDraft(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusDraft), resp.Status)
	assert.Equal(t, []int64{1, 2, 3}, resp.TravelerIDs)
	assert.Equal(t, "ru", resp.ExcursionLanguage, "язык по умолчанию")
	assert.Len(t, f.bookingRepo.created.BookingCode, domain.BookingCodeLength)
}

func TestExecuteFillsRegionAndBackfillsFamily(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "CDS", resp.RegionName)
	assert.Equal(t, 1, f.backfiller.calls)
	assert.Equal(t, int64(9), f.backfiller.familyID)
	assert.Equal(t, "CDS", f.backfiller.region)
}

func TestExecuteRegionUnresolvedStillCreates(t *testing.T) {
	f := newFixture()
	f.resolver.ok = false

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "", resp.RegionName, "пустой регион не мешает созданию")
	assert.Equal(t, 0, f.backfiller.calls)
}

func TestExecuteExplicitRegionSkipsResolver(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.RegionName = "Marbella"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Marbella", resp.RegionName)
	assert.Equal(t, 0, f.resolver.calls)
}

func TestExecuteQuotedPrices(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.PriceSourcePickup), resp.PriceSource)
	assert.Equal(t, 50.0, resp.PricePerAdult)
	assert.Equal(t, 20.0, resp.PricePerChild)
	assert.Equal(t, 120.0, resp.GrossTotal)
}

func TestExecuteManualPrices(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.PriceSource = string(domain.PriceSourceManual)
	req.PricePerAdult = f64(60)
	req.PricePerChild = f64(25)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.PriceSourceManual), resp.PriceSource)
	assert.Equal(t, 145.0, resp.GrossTotal, "2*60 + 1*25")
	assert.Equal(t, 0, f.pricing.calls, "ручные цены не трогают котировщик")
}

func TestExecuteManualWithoutPerAdultFails(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.PriceSource = string(domain.PriceSourceManual)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteImplicitManualWhenPerAdultSet(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.PricePerAdult = f64(70)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PriceSourceManual), resp.PriceSource)
	assert.Equal(t, 0, f.pricing.calls)
}

func TestExecuteNetTotalsFromNetPrices(t *testing.T) {
	f := newFixture()
	f.netPrices.res = &netprices.Resolution{NetPerAdult: 40, NetPerChild: 30, Currency: "EUR"}
	f.netPrices.err = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 110.0, resp.NetTotal, "2*40 + 1*30")
	assert.Equal(t, 10.0, resp.Commission, "120 брутто - 110 нетто")
}

func TestExecuteQuoteNetWinsOverNetPrices(t *testing.T) {
	f := newFixture()
	f.pricing.result.Net = f64(90)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 90.0, resp.NetTotal)
	assert.Equal(t, 30.0, resp.Commission)
	assert.Equal(t, 0, f.netPrices.calls, "нетто из котировки исключает каскад нетто-цен")
}

func TestExecutePricingUnavailable(t *testing.T) {
	f := newFixture()
	f.pricing.result = nil
	f.pricing.err = pricing.ErrPricingUnavailable

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestExecuteCompanyInactive(t *testing.T) {
	f := newFixture()
	f.companyRepo.company.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCompanyInactive)
}

func TestExecuteDuplicateSibling(t *testing.T) {
	f := newFixture()
	dup := &domain.BookingSale{ExcursionID: 7, Status: domain.StatusPending}
	dup.SetTravelerIDs([]int64{3, 2, 1})
	f.bookingRepo.siblings = []*domain.BookingSale{dup}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Nil(t, f.bookingRepo.created)
}

func TestExecuteNoFamilySkipsConflictCheck(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.FamilyID = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecutePickupTimeNormalized(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.PickupTime = "9.5"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "09:05", resp.PickupTime)
}

func TestExecuteSerializationErrorNotWrapped(t *testing.T) {
	f := newFixture()
	f.bookingRepo.createErr = &pq.Error{Code: "40001"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, txmanager.IsSerialization(err), "ошибка сериализации должна дойти до handler как retryable")
	assert.NotErrorIs(t, err, ErrInternal)
}
