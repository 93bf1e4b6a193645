package get_net_prices

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

type NetPriceService interface {
	ListByExcursion(ctx context.Context, excursionID int64) ([]*domain.ExcursionNetPrice, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
