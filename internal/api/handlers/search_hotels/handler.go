package search_hotels

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

const (
	msgMissingQuery = "не передан параметр q"

	defaultLimit = 10
	maxLimit     = 50
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

// Handle GET /api/v1/hotels?q=
// Недоступность каталога не роняет ручку: отдаем пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		handlers.RespondBadRequest(w, msgMissingQuery)
		return
	}

	limit, err := handlers.QueryInt(r, "limit", defaultLimit)
	if err != nil || limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	hotels, err := h.catalog.SearchHotels(r.Context(), q, limit)
	if err != nil {
		if errors.Is(err, costasolinfo.ErrNotFound) || errors.Is(err, costasolinfo.ErrUnavailable) {
			h.logger.Warn("GET /hotels - Catalog miss for q=%q: %v", q, err)
			handlers.RespondJSON(w, http.StatusOK, []costasolinfo.Hotel{})
			return
		}
		h.logger.Error("GET /hotels - Failed to search hotels: q=%q, error=%v", q, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, hotels)
}
