package create_booking

import (
	"fmt"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// validateRequest проверяет входные данные до обращений к БД и каталогу
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: company id is required", ErrInvalidInput)
	}
	if req.GuideID <= 0 {
		return fmt.Errorf("%w: guide id is required", ErrInvalidInput)
	}
	if req.ExcursionID <= 0 {
		return fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}
	if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
		return fmt.Errorf("%w: negative traveler counts", ErrInvalidInput)
	}
	if req.Adults+req.Children == 0 {
		return fmt.Errorf("%w: at least one adult or child required", ErrInvalidInput)
	}
	if req.ExcursionLanguage != "" && !domain.IsValidExcursionLanguage(req.ExcursionLanguage) {
		return fmt.Errorf("%w: unsupported excursion language %q", ErrInvalidInput, req.ExcursionLanguage)
	}
	if req.PriceSource != "" && !domain.IsValidPriceSource(domain.PriceSource(req.PriceSource)) {
		return fmt.Errorf("%w: unsupported price source %q", ErrInvalidInput, req.PriceSource)
	}
	for _, id := range req.TravelerIDs {
		if id <= 0 {
			return fmt.Errorf("%w: invalid traveler id %d", ErrInvalidInput, id)
		}
	}
	return nil
}

// parseBookingDate разбирает дату брони из формата API
func parseBookingDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	d, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", ErrInvalidDate, raw)
	}
	return d, nil
}
