package send_booking

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный id брони"
	msgBookingNotFound  = "бронь не найдена"
	msgCannotSend       = "отправить можно только черновик"
	msgNoOrderEmail     = "у компании не настроен email для заказов"
	msgSendFailed       = "письмо партнеру не отправлено, статус брони не изменен"
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

// Handle POST /api/v1/bookings/{id}/send
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/send - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Send(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/send - Booking not found: booking_id=%d", id)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrCannotSend):
			h.logger.Warn("POST /bookings/{id}/send - Cannot send: booking_id=%d", id)
			handlers.RespondBadRequest(w, msgCannotSend)
		case errors.Is(err, bookings.ErrNoOrderEmail), errors.Is(err, bookings.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings/{id}/send - No order email: booking_id=%d", id)
			handlers.RespondBadRequest(w, msgNoOrderEmail)
		case errors.Is(err, bookings.ErrSendFailed):
			h.logger.Error("POST /bookings/{id}/send - Send failed: booking_id=%d, error=%v", id, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)
		default:
			h.logger.Error("POST /bookings/{id}/send - Failed to send booking: booking_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/send - Booking sent: booking_id=%d, batch=%s", id, result.BatchCode)
	handlers.RespondJSON(w, http.StatusOK, result)
}
