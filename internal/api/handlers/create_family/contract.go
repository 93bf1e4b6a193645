package create_family

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

type FamilyService interface {
	Create(ctx context.Context, req *models.CreateFamilyRequest) (*models.FamilyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
