package pricing

import (
	"context"
	"fmt"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

// QuoteSource ярус водопада, давший цену
type QuoteSource string

const (
	SourceCSI    QuoteSource = "CSI"
	SourcePickup QuoteSource = "PICKUP"
	SourceRegion QuoteSource = "REGION"
)

// QuoteRequest запрос котировки
type QuoteRequest struct {
	ExcursionID    int64
	HotelID        *int64
	Date           string
	Language       string
	Adults         int
	Children       int
	Infants        int
	RegionOverride string
}

// QuoteResult результат котировки
// Per-head цены присутствуют, когда ярус их отдал
type QuoteResult struct {
	Gross      float64
	Currency   string
	Source     QuoteSource
	PerAdult   *float64
	PerChild   *float64
	Net        *float64
	Commission *float64
}

// Service движок котировок: строгий водопад из трех ярусов
// Котировщик каталога -> цены точки сбора -> региональная таблица цен
// Попадание на раннем ярусе исключает обращение к поздним
type Service struct {
	catalog CatalogClient
	logger  Logger
}

// NewService создает новый экземпляр движка котировок
func NewService(catalog CatalogClient, logger Logger) *Service {
	return &Service{catalog: catalog, logger: logger}
}

// Quote выдает брутто-котировку для экскурсии
// Все денежные значения округляются half-up до центов в точке расчета
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if req.ExcursionID <= 0 {
		return nil, fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}
	if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
		return nil, fmt.Errorf("%w: negative traveler counts", ErrInvalidInput)
	}

	// Ярус 1: котировщик каталога
	if result := s.quoteFromCSI(ctx, req); result != nil {
		return result, nil
	}

	// Ярус 2: цены точки сбора для пары (экскурсия, отель)
	if result := s.quoteFromPickup(ctx, req); result != nil {
		return result, nil
	}

	// Ярус 3: региональная таблица цен экскурсии
	if result := s.quoteFromRegion(ctx, req); result != nil {
		return result, nil
	}

	s.logger.Warn("Quote: no price for excursion=%d hotel=%v region=%q",
		req.ExcursionID, req.HotelID, req.RegionOverride)
	return nil, ErrPricingUnavailable
}

func (s *Service) quoteFromCSI(ctx context.Context, req QuoteRequest) *QuoteResult {
	quote, err := s.catalog.Pricing(ctx, req.ExcursionID, req.Adults, req.Children, req.Infants,
		req.Language, req.HotelID, req.Date)
	if err != nil {
		return nil
	}

	result := &QuoteResult{
		Gross:      domain.RoundMoney(quote.Gross),
		Currency:   quote.Currency,
		Source:     SourceCSI,
		PerAdult:   roundPtr(quote.PerAdult),
		PerChild:   roundPtr(quote.PerChild),
		Net:        roundPtr(quote.Net),
		Commission: roundPtr(quote.Commission),
	}
	s.logger.Info("Quote: excursion=%d priced by CSI, gross=%.2f %s",
		req.ExcursionID, result.Gross, result.Currency)
	return result
}

func (s *Service) quoteFromPickup(ctx context.Context, req QuoteRequest) *QuoteResult {
	if req.HotelID == nil {
		return nil
	}

	pickup, err := s.catalog.ExcursionPickup(ctx, req.ExcursionID, *req.HotelID)
	if err != nil || pickup.PriceAdult == nil {
		return nil
	}

	adult := *pickup.PriceAdult
	child := adult
	if pickup.PriceChild != nil {
		child = *pickup.PriceChild
	}

	currency := pickup.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	perAdult := domain.RoundMoney(adult)
	perChild := domain.RoundMoney(child)
	result := &QuoteResult{
		Gross:    domain.RoundMoney(adult*float64(req.Adults) + child*float64(req.Children)),
		Currency: currency,
		Source:   SourcePickup,
		PerAdult: &perAdult,
		PerChild: &perChild,
	}
	s.logger.Info("Quote: excursion=%d priced by pickup point, gross=%.2f %s",
		req.ExcursionID, result.Gross, result.Currency)
	return result
}

func (s *Service) quoteFromRegion(ctx context.Context, req QuoteRequest) *QuoteResult {
	region := s.resolveRegion(ctx, req)
	if region == nil {
		return nil
	}

	row, err := s.catalog.ExcursionRegionPrice(ctx, req.ExcursionID, region)
	if err != nil {
		return nil
	}

	perAdult := domain.RoundMoney(row.Adult)
	perChild := domain.RoundMoney(row.Child)
	result := &QuoteResult{
		Gross:    domain.RoundMoney(row.Adult*float64(req.Adults) + row.Child*float64(req.Children)),
		Currency: row.Currency,
		Source:   SourceRegion,
		PerAdult: &perAdult,
		PerChild: &perChild,
	}
	s.logger.Info("Quote: excursion=%d priced by region table (%s), gross=%.2f %s",
		req.ExcursionID, region.Slug, result.Gross, result.Currency)
	return result
}

// resolveRegion регион для яруса 3: явный override, иначе регион отеля
func (s *Service) resolveRegion(ctx context.Context, req QuoteRequest) *costasolinfo.Region {
	if req.RegionOverride != "" {
		return &costasolinfo.Region{Slug: req.RegionOverride}
	}
	if req.HotelID == nil {
		return nil
	}
	region, err := s.catalog.HotelRegion(ctx, *req.HotelID)
	if err != nil {
		return nil
	}
	return region
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := domain.RoundMoney(*v)
	return &r
}
