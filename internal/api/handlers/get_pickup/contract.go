package get_pickup

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

type CatalogClient interface {
	ExcursionPickup(ctx context.Context, excursionID, hotelID int64) (*costasolinfo.PickupPoint, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
