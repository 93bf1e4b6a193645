package cancel_booking

import (
	"context"

	"github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id int64, reason string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
