package get_pickup

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

const (
	msgMissingParams  = "нужны параметры excursion_id и hotel_id"
	msgPickupNotFound = "точка сбора не найдена"
)

type Handler struct {
	catalog CatalogClient
	logger  Logger
}

func NewHandler(catalog CatalogClient, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/pickups?excursion_id=&hotel_id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	excursionID, err1 := handlers.QueryInt64(r, "excursion_id")
	hotelID, err2 := handlers.QueryInt64(r, "hotel_id")
	if err1 != nil || err2 != nil || excursionID == nil || hotelID == nil {
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	pickup, err := h.catalog.ExcursionPickup(r.Context(), *excursionID, *hotelID)
	if err != nil {
		switch {
		case errors.Is(err, costasolinfo.ErrNotFound), errors.Is(err, costasolinfo.ErrUnavailable):
			h.logger.Warn("GET /pickups - Pickup miss: excursion_id=%d, hotel_id=%d, error=%v",
				*excursionID, *hotelID, err)
			handlers.RespondNotFound(w, msgPickupNotFound)
		default:
			h.logger.Error("GET /pickups - Failed to get pickup: excursion_id=%d, hotel_id=%d, error=%v",
				*excursionID, *hotelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pickup)
}
