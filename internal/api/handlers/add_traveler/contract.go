package add_traveler

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

type FamilyService interface {
	AddTraveler(ctx context.Context, familyID int64, req *models.AddTravelerRequest) (*models.TravelerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
