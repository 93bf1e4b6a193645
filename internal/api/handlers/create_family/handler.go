package create_family

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/families"
	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные семьи"
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

// Handle POST /api/v1/families
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFamilyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /families - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, families.ErrInvalidInput):
			h.logger.Warn("POST /families - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /families - Failed to create family: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /families - Family created: family_id=%d, ref=%s", result.ID, result.RefCode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
