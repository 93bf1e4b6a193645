package create_booking

import (
	"context"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/service/netprices"
	"github.com/m4rkov/CSI-SalesService/internal/service/pricing"
	"github.com/m4rkov/CSI-SalesService/internal/service/regions"
)

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookingSale) (*domain.BookingSale, error)
	GetBusySiblings(ctx context.Context, filter domain.SiblingFilter) ([]*domain.BookingSale, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

// FamilyRepository интерфейс репозитория семей
type FamilyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error)
}

// RegionResolver интерфейс резолвера регионов
type RegionResolver interface {
	Resolve(ctx context.Context, probe regions.Probe) (string, bool)
}

// RegionBackfiller дозаполняет регион семьи после удачного определения
type RegionBackfiller interface {
	BackfillRegion(ctx context.Context, familyID int64, regionName string)
}

// PricingEngine интерфейс движка котировок
type PricingEngine interface {
	Quote(ctx context.Context, req pricing.QuoteRequest) (*pricing.QuoteResult, error)
}

// NetPriceResolver интерфейс резолвера нетто-цен
type NetPriceResolver interface {
	Resolve(ctx context.Context, companyID *int64, excursionID int64, regionName string, date time.Time) (*netprices.Resolution, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
