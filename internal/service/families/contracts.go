package families

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// FamilyRepository интерфейс репозитория семейных броней
type FamilyRepository interface {
	Create(ctx context.Context, f *domain.FamilyBooking) (*domain.FamilyBooking, error)
	GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error)
	UpdateRegionName(ctx context.Context, id int64, regionName string) error
}

// TravelerRepository интерфейс репозитория туристов
type TravelerRepository interface {
	Create(ctx context.Context, t *domain.Traveler) (*domain.Traveler, error)
	GetByFamilyID(ctx context.Context, familyID int64) ([]*domain.Traveler, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
