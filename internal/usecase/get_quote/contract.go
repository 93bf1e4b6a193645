package get_quote

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/service/pricing"
)

// PricingEngine интерфейс движка котировок
type PricingEngine interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.QuoteResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
