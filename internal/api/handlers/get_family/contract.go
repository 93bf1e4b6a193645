package get_family

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

type FamilyService interface {
	GetByID(ctx context.Context, id int64) (*models.FamilyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
