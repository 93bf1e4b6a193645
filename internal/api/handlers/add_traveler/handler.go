package add_traveler

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	"github.com/m4rkov/CSI-SalesService/internal/service/families"
	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFamilyID    = "некорректный id семьи"
	msgInvalidInput       = "некорректные данные туриста"
	msgFamilyNotFound     = "семья не найдена"
	msgTravelerExists     = "такой турист уже есть в семье"
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

// Handle POST /api/v1/families/{id}/travelers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	familyID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /families/{id}/travelers - Invalid family id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFamilyID)
		return
	}

	var req models.AddTravelerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /families/{id}/travelers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddTraveler(r.Context(), familyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, families.ErrFamilyNotFound):
			h.logger.Warn("POST /families/{id}/travelers - Family not found: family_id=%d", familyID)
			handlers.RespondNotFound(w, msgFamilyNotFound)
		case errors.Is(err, families.ErrTravelerExists):
			h.logger.Warn("POST /families/{id}/travelers - Traveler exists: family_id=%d", familyID)
			handlers.RespondBadRequest(w, msgTravelerExists)
		case errors.Is(err, families.ErrInvalidInput):
			h.logger.Warn("POST /families/{id}/travelers - Invalid input: family_id=%d, error=%v", familyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /families/{id}/travelers - Failed to add traveler: family_id=%d, error=%v", familyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /families/{id}/travelers - Traveler added: traveler_id=%d, family_id=%d", result.ID, familyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
