package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/bookings
// Фильтры: company_id, family_id, start_date, end_date, status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID, err := handlers.QueryInt64(r, "company_id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	familyID, err := handlers.QueryInt64(r, "family_id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	req := &models.ListBookingsRequest{
		CompanyID: companyID,
		FamilyID:  familyID,
		StartDate: handlers.QueryString(r, "start_date"),
		EndDate:   handlers.QueryString(r, "end_date"),
		Status:    handlers.QueryString(r, "status"),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
