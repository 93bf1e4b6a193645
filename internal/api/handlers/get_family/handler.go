package get_family

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/families"
)

const (
	msgInvalidFamilyID = "некорректный id семьи"
	msgFamilyNotFound  = "семья не найдена"
)

type Handler struct {
	service FamilyService
	logger  Logger
}

func NewHandler(service FamilyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/families/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /families/{id} - Invalid family id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFamilyID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, families.ErrFamilyNotFound):
			h.logger.Warn("GET /families/{id} - Family not found: family_id=%d", id)
			handlers.RespondNotFound(w, msgFamilyNotFound)
		default:
			h.logger.Error("GET /families/{id} - Failed to get family: family_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
