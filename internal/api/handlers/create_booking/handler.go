package create_booking

import (
	"errors"
	"net/http"

	"github.com/m4rkov/CSI-SalesService/internal/api/handlers"
	createBooking "github.com/m4rkov/CSI-SalesService/internal/usecase/create_booking"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput        = "некорректные данные брони"
	msgCompanyNotFound     = "компания не найдена"
	msgCompanyInactive     = "компания отключена"
	msgFamilyNotFound      = "семья не найдена"
	msgDuplicateBooking    = "такая бронь уже есть: та же экскурсия, та же дата и тот же состав участников"
	msgTravelerConflict    = "участники уже заняты в другой экскурсии в этот день"
	msgPricingUnavailable  = "pricing_unavailable"
	msgSerializationRetry  = "бронь не создана из-за конкурентного изменения, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var conflict *createBooking.TravelerConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Traveler conflict: family=%v, travelers=%v", req.FamilyID, conflict.TravelerIDs)
			handlers.RespondJSON(w, http.StatusBadRequest, handlers.ConflictResponse{
				Error:       msgTravelerConflict,
				TravelerIDs: conflict.TravelerIDs,
			})

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: family=%v, excursion=%d", req.FamilyID, req.ExcursionID)
			handlers.RespondBadRequest(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrCompanyInactive):
			h.logger.Warn("POST /bookings - Company inactive: company_id=%d", req.CompanyID)
			handlers.RespondBadRequest(w, msgCompanyInactive)

		case errors.Is(err, createBooking.ErrFamilyNotFound):
			h.logger.Warn("POST /bookings - Family not found: family_id=%v", req.FamilyID)
			handlers.RespondNotFound(w, msgFamilyNotFound)

		case errors.Is(err, createBooking.ErrPricingUnavailable):
			h.logger.Warn("POST /bookings - Pricing unavailable: excursion_id=%d", req.ExcursionID)
			handlers.RespondNotFound(w, msgPricingUnavailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %q", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case txmanager.IsSerialization(err):
			h.logger.Warn("POST /bookings - Serialization failure, client should retry: family=%v", req.FamilyID)
			handlers.RespondConflict(w, msgSerializationRetry)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: company_id=%d, error=%v", req.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, code=%s, company_id=%d",
		result.ID, result.BookingCode, req.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
