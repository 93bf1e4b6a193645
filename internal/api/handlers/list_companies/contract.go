package list_companies

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

type CompanyRepository interface {
	ListActive(ctx context.Context) ([]*domain.Company, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
