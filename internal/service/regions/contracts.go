package regions

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

// FamilyRepository интерфейс репозитория семейных бронирований
type FamilyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error)
}

// CatalogClient интерфейс клиента каталога CostaSolinfo
type CatalogClient interface {
	HotelRegion(ctx context.Context, hotelID int64) (*costasolinfo.Region, error)
	RegionForHotelName(ctx context.Context, name string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
