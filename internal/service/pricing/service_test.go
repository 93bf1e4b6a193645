package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

type stubCatalog struct {
	pricingQuote *costasolinfo.PricingQuote
	pricingErr   error
	pricingCalls int

	pickup      *costasolinfo.PickupPoint
	pickupErr   error
	pickupCalls int

	regionRow   *costasolinfo.PriceRow
	regionErr   error
	regionCalls int

	hotelRegion    *costasolinfo.Region
	hotelRegionErr error
}

func (c *stubCatalog) Pricing(ctx context.Context, excursionID int64, adults, children, infants int, language string, hotelID *int64, date string) (*costasolinfo.PricingQuote, error) {
	c.pricingCalls++
	return c.pricingQuote, c.pricingErr
}

func (c *stubCatalog) ExcursionPickup(ctx context.Context, excursionID, hotelID int64) (*costasolinfo.PickupPoint, error) {
	c.pickupCalls++
	return c.pickup, c.pickupErr
}

func (c *stubCatalog) ExcursionRegionPrice(ctx context.Context, excursionID int64, region *costasolinfo.Region) (*costasolinfo.PriceRow, error) {
	c.regionCalls++
	return c.regionRow, c.regionErr
}

func (c *stubCatalog) HotelRegion(ctx context.Context, hotelID int64) (*costasolinfo.Region, error) {
	return c.hotelRegion, c.hotelRegionErr
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestQuoteCSITierWins(t *testing.T) {
	catalog := &stubCatalog{
		pricingQuote: &costasolinfo.PricingQuote{
			Gross: 120.505, Net: f64(90), Commission: f64(30.505), Currency: "EUR",
		},
		pickup: &costasolinfo.PickupPoint{PriceAdult: f64(50)},
	}
	svc := NewService(catalog, nopLogger{})

	result, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, HotelID: i64(3), Adults: 2, Children: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceCSI, result.Source)
	assert.Equal(t, 120.51, result.Gross)
	assert.Equal(t, 30.51, *result.Commission)
	assert.Equal(t, 0, catalog.pickupCalls, "ранний ярус исключает поздние")
	assert.Equal(t, 0, catalog.regionCalls)
}

func TestQuoteFallsBackToPickup(t *testing.T) {
	catalog := &stubCatalog{
		pricingErr: costasolinfo.ErrNotFound,
		pickup: &costasolinfo.PickupPoint{
			PriceAdult: f64(45), PriceChild: f64(30), Currency: "EUR",
		},
	}
	svc := NewService(catalog, nopLogger{})

	result, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, HotelID: i64(3), Adults: 2, Children: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, SourcePickup, result.Source)
	assert.Equal(t, 120.0, result.Gross)
	assert.Equal(t, 45.0, *result.PerAdult)
	assert.Equal(t, 30.0, *result.PerChild)
	assert.Nil(t, result.Net)
	assert.Equal(t, 0, catalog.regionCalls)
}

func TestQuotePickupChildDefaultsToAdult(t *testing.T) {
	catalog := &stubCatalog{
		pricingErr: costasolinfo.ErrNotFound,
		pickup:     &costasolinfo.PickupPoint{PriceAdult: f64(40)},
	}
	svc := NewService(catalog, nopLogger{})

	result, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, HotelID: i64(3), Adults: 1, Children: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.Gross)
	assert.Equal(t, "EUR", result.Currency)
}

func TestQuoteFallsBackToRegionTable(t *testing.T) {
	catalog := &stubCatalog{
		pricingErr:  costasolinfo.ErrNotFound,
		pickupErr:   costasolinfo.ErrNotFound,
		hotelRegion: &costasolinfo.Region{Slug: "cds"},
		regionRow:   &costasolinfo.PriceRow{Adult: 55, Child: 40, Currency: "EUR"},
	}
	svc := NewService(catalog, nopLogger{})

	result, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, HotelID: i64(3), Adults: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceRegion, result.Source)
	assert.Equal(t, 110.0, result.Gross)
	assert.Equal(t, 1, catalog.pricingCalls)
	assert.Equal(t, 1, catalog.pickupCalls)
	assert.Equal(t, 1, catalog.regionCalls)
}

func TestQuoteRegionOverrideSkipsHotelLookup(t *testing.T) {
	catalog := &stubCatalog{
		pricingErr:     costasolinfo.ErrNotFound,
		pickupErr:      costasolinfo.ErrNotFound,
		hotelRegionErr: costasolinfo.ErrNotFound,
		regionRow:      &costasolinfo.PriceRow{Adult: 55, Child: 40, Currency: "EUR"},
	}
	svc := NewService(catalog, nopLogger{})

	result, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, Adults: 1, RegionOverride: "marbella",
	})
	require.NoError(t, err)
	assert.Equal(t, SourceRegion, result.Source)
}

func TestQuoteAllTiersMiss(t *testing.T) {
	catalog := &stubCatalog{
		pricingErr: costasolinfo.ErrNotFound,
		pickupErr:  costasolinfo.ErrNotFound,
		regionErr:  costasolinfo.ErrNotFound,
	}
	svc := NewService(catalog, nopLogger{})

	_, err := svc.Quote(context.Background(), QuoteRequest{
		ExcursionID: 7, HotelID: i64(3), Adults: 1, RegionOverride: "cds",
	})
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestQuoteInvalidInput(t *testing.T) {
	svc := NewService(&stubCatalog{}, nopLogger{})

	_, err := svc.Quote(context.Background(), QuoteRequest{ExcursionID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Quote(context.Background(), QuoteRequest{ExcursionID: 7, Adults: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
