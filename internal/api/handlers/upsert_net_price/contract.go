package upsert_net_price

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

type NetPriceService interface {
	Upsert(ctx context.Context, p *domain.ExcursionNetPrice) (*domain.ExcursionNetPrice, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
