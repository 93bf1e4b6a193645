package bookings

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/service/regions"
)

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingSale, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingSale, error)
	Update(ctx context.Context, b *domain.BookingSale) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	MarkSent(ctx context.Context, id int64, batchCode, sentTo string) error
	Cancel(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

// TravelerRepository интерфейс репозитория туристов
type TravelerRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Traveler, error)
}

// CatalogClient интерфейс клиента каталога (двуязычные названия экскурсий)
type CatalogClient interface {
	ExcursionTitle(ctx context.Context, excursionID int64, lang string) (string, error)
}

// Mailer интерфейс почтового клиента
type Mailer interface {
	Send(ctx context.Context, subject, htmlBody, textBody string, to []string) error
}

// RegionResolver интерфейс резолвера регионов (дозаполнение при правке)
type RegionResolver interface {
	Resolve(ctx context.Context, probe regions.Probe) (string, bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
