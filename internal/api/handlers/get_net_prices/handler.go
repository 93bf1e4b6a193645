package get_net_prices

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/netprices"
)

const (
	msgInvalidExcursionID = "некорректный или отсутствующий excursion_id"
)

type Handler struct {
	service NetPriceService
	logger  Logger
}

func NewHandler(service NetPriceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/net-prices?excursion_id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	excursionID, err := handlers.QueryInt64(r, "excursion_id")
	if err != nil || excursionID == nil {
		h.logger.Warn("GET /net-prices - Invalid excursion_id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	prices, err := h.service.ListByExcursion(r.Context(), *excursionID)
	if err != nil {
		switch {
		case errors.Is(err, netprices.ErrInvalidInput):
			h.logger.Warn("GET /net-prices - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcursionID)
		default:
			h.logger.Error("GET /net-prices - Failed to list net prices: excursion_id=%d, error=%v", *excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := NetPriceListResponse{NetPrices: make([]NetPriceResponse, 0, len(prices))}
	for _, p := range prices {
		resp.NetPrices = append(resp.NetPrices, FromDomainNetPrice(p))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
