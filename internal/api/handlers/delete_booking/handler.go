package delete_booking

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный id брони"
	msgBookingNotFound  = "бронь не найдена"
	msgNotDraft         = "удалять можно только черновик"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrNotDraft):
			h.logger.Warn("DELETE /bookings/{id} - Booking is not a draft: booking_id=%d", id)
			handlers.RespondBadRequest(w, msgNotDraft)
		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Draft deleted: booking_id=%d", id)
	handlers.RespondNoContent(w)
}
