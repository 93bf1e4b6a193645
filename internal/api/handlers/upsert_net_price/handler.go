package upsert_net_price

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/netprices"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные нетто-цены"
	msgInvalidDates       = "некорректные даты действия, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/net-prices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpsertNetPriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /net-prices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	price, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /net-prices - Invalid validity dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	saved, err := h.service.Upsert(r.Context(), price)
	if err != nil {
		switch {
		case errors.Is(err, netprices.ErrInvalidInput):
			h.logger.Warn("POST /net-prices - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /net-prices - Failed to upsert net price: excursion_id=%d, error=%v", req.ExcursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /net-prices - Net price saved: id=%d, excursion_id=%d", saved.ID, saved.ExcursionID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(saved))
}
