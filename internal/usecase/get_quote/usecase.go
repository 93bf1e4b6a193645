package get_quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/service/pricing"
)

// Request запрос предварительной котировки (до создания брони)
type Request struct {
	ExcursionID int64
	HotelID     *int64
	Date        string
	Language    string
	Adults      int
	Children    int
	Infants     int
	Region      string
}

// Response ответ с котировкой
type Response struct {
	Gross      float64  `json:"gross"`
	Currency   string   `json:"currency"`
	Source     string   `json:"source"` // CSI / PICKUP / REGION
	PerAdult   *float64 `json:"perAdult,omitempty"`
	PerChild   *float64 `json:"perChild,omitempty"`
	Net        *float64 `json:"net,omitempty"`
	Commission *float64 `json:"commission,omitempty"`
}

// UseCase use case предварительной котировки
type UseCase struct {
	pricingEngine PricingEngine
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pricingEngine PricingEngine, logger Logger) *UseCase {
	return &UseCase{pricingEngine: pricingEngine, logger: logger}
}

// Execute выполняет котировку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: excursion=%d, hotel=%v, date=%s, adults=%d, children=%d",
		req.ExcursionID, req.HotelID, req.Date, req.Adults, req.Children)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuote: validation failed: %v", err)
		return nil, err
	}

	quote, err := uc.pricingEngine.Quote(ctx, pricing.QuoteRequest{
		ExcursionID:    req.ExcursionID,
		HotelID:        req.HotelID,
		Date:           req.Date,
		Language:       req.Language,
		Adults:         req.Adults,
		Children:       req.Children,
		Infants:        req.Infants,
		RegionOverride: req.Region,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrPricingUnavailable) {
			uc.logger.Warn("GetQuote: pricing unavailable for excursion=%d", req.ExcursionID)
			return nil, ErrPricingUnavailable
		}
		if errors.Is(err, pricing.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetQuote: pricing failed for excursion=%d: %v", req.ExcursionID, err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	return &Response{
		Gross:      quote.Gross,
		Currency:   quote.Currency,
		Source:     string(quote.Source),
		PerAdult:   quote.PerAdult,
		PerChild:   quote.PerChild,
		Net:        quote.Net,
		Commission: quote.Commission,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ExcursionID <= 0 {
		return fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}
	if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
		return fmt.Errorf("%w: negative traveler counts", ErrInvalidInput)
	}
	if req.Adults+req.Children == 0 {
		return fmt.Errorf("%w: at least one adult or child required", ErrInvalidInput)
	}
	if req.Date != "" {
		if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
			return fmt.Errorf("%w: %q is not a valid date", ErrInvalidInput, req.Date)
		}
	}
	if req.Language != "" && !domain.IsValidExcursionLanguage(req.Language) {
		return fmt.Errorf("%w: unsupported excursion language %q", ErrInvalidInput, req.Language)
	}
	return nil
}
