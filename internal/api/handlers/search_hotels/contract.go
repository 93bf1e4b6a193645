package search_hotels

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

type CatalogClient interface {
	SearchHotels(ctx context.Context, q string, limit int) ([]costasolinfo.Hotel, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
