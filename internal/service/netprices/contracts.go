package netprices

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// NetPriceRepository интерфейс репозитория нетто-цен
type NetPriceRepository interface {
	GetActiveCandidates(ctx context.Context, companyID *int64, excursionID int64, regionSlug string) ([]*domain.ExcursionNetPrice, error)
	ListByExcursion(ctx context.Context, excursionID int64) ([]*domain.ExcursionNetPrice, error)
	Upsert(ctx context.Context, p *domain.ExcursionNetPrice) (*domain.ExcursionNetPrice, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
