package list_excursions

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

const (
	msgInvalidLanguage = "неподдерживаемый язык экскурсии"
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

// Handle GET /api/v1/excursions?lang=&date=&region=
// Недоступность каталога не роняет ручку: отдаем пустой список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "ru"
	}
	if !domain.IsValidExcursionLanguage(lang) {
		handlers.RespondBadRequest(w, msgInvalidLanguage)
		return
	}

	date := r.URL.Query().Get("date")
	region := r.URL.Query().Get("region")

	excursions, err := h.catalog.ListExcursions(r.Context(), lang, date, region)
	if err != nil {
		if errors.Is(err, costasolinfo.ErrNotFound) || errors.Is(err, costasolinfo.ErrUnavailable) {
			h.logger.Warn("GET /excursions - Catalog miss: lang=%s, error=%v", lang, err)
			handlers.RespondJSON(w, http.StatusOK, []costasolinfo.ExcursionSummary{})
			return
		}
		h.logger.Error("GET /excursions - Failed to list excursions: lang=%s, error=%v", lang, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, excursions)
}
