package list_excursions

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

type CatalogClient interface {
	ListExcursions(ctx context.Context, lang, date, region string) ([]costasolinfo.ExcursionSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
