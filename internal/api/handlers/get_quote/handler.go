package get_quote

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	getQuote "github.com/m4rkov/CSI-SalesService/internal/usecase/get_quote"
)

const (
	msgInvalidParams      = "некорректные параметры котировки"
	msgPricingUnavailable = "pricing_unavailable"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/quote?excursion_id=&hotel_id=&date=&adults=&children=&infants=&lang=&region=
// Отсутствие цены - это 404 pricing_unavailable, а не нулевая котировка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	excursionID, err := handlers.QueryInt64(r, "excursion_id")
	if err != nil || excursionID == nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	hotelID, err := handlers.QueryInt64(r, "hotel_id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	adults, err1 := handlers.QueryInt(r, "adults", 0)
	children, err2 := handlers.QueryInt(r, "children", 0)
	infants, err3 := handlers.QueryInt(r, "infants", 0)
	if err1 != nil || err2 != nil || err3 != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &getQuote.Request{
		ExcursionID: *excursionID,
		HotelID:     hotelID,
		Date:        r.URL.Query().Get("date"),
		Language:    r.URL.Query().Get("lang"),
		Adults:      adults,
		Children:    children,
		Infants:     infants,
		Region:      r.URL.Query().Get("region"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrPricingUnavailable):
			h.logger.Warn("GET /quote - Pricing unavailable: excursion_id=%d", *excursionID)
			handlers.RespondNotFound(w, msgPricingUnavailable)
		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /quote - Failed to quote: excursion_id=%d, error=%v", *excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
