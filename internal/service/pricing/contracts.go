package pricing

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

// CatalogClient интерфейс клиента каталога CostaSolinfo
type CatalogClient interface {
	Pricing(ctx context.Context, excursionID int64, adults, children, infants int, lang string, hotelID *int64, date string) (*costasolinfo.PricingQuote, error)
	ExcursionPickup(ctx context.Context, excursionID, hotelID int64) (*costasolinfo.PickupPoint, error)
	ExcursionRegionPrice(ctx context.Context, excursionID int64, region *costasolinfo.Region) (*costasolinfo.PriceRow, error)
	HotelRegion(ctx context.Context, hotelID int64) (*costasolinfo.Region, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
