package get_family_bookings

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
)

const (
	msgInvalidFamilyID = "некорректный id семьи"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/families/{id}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	familyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /families/{id}/bookings - Invalid family id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFamilyID)
		return
	}

	req := &models.ListBookingsRequest{
		FamilyID:  &familyID,
		StartDate: handlers.QueryString(r, "start_date"),
		EndDate:   handlers.QueryString(r, "end_date"),
		Status:    handlers.QueryString(r, "status"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /families/{id}/bookings - Invalid filter: family_id=%d, error=%v", familyID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /families/{id}/bookings - Failed to list bookings: family_id=%d, error=%v", familyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
