package upsert_net_price

import (
	"time"

	netpricedto "github.com/m4rkov/CSI-SalesService/internal/api/handlers/get_net_prices"
	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// UpsertNetPriceRequest запрос на создание/обновление нетто-цены
// Ключ upsert: (companyId, excursionId, regionSlug)
type UpsertNetPriceRequest struct {
	CompanyID        *int64   `json:"companyId,omitempty"`
	ExcursionID      int64    `json:"excursionId"`
	RegionSlug       string   `json:"regionSlug,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	NetPerAdult      *float64 `json:"netPerAdult"`
	NetPerChild      *float64 `json:"netPerChild,omitempty"`
	ChildDiscountPct float64  `json:"childDiscountPct,omitempty"`
	ValidFrom        *string  `json:"validFrom,omitempty"` // "2026-05-01"
	ValidTo          *string  `json:"validTo,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"` // default true
}

// ToDomain конвертирует запрос в domain модель
func (r *UpsertNetPriceRequest) ToDomain() (*domain.ExcursionNetPrice, error) {
	p := &domain.ExcursionNetPrice{
		CompanyID:        r.CompanyID,
		ExcursionID:      r.ExcursionID,
		RegionSlug:       r.RegionSlug,
		Currency:         r.Currency,
		NetPerAdult:      r.NetPerAdult,
		NetPerChild:      r.NetPerChild,
		ChildDiscountPct: r.ChildDiscountPct,
		IsActive:         true,
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}

	var err error
	if p.ValidFrom, err = parseDatePtr(r.ValidFrom); err != nil {
		return nil, err
	}
	if p.ValidTo, err = parseDatePtr(r.ValidTo); err != nil {
		return nil, err
	}
	return p, nil
}

// FromDomain DTO сохраненной записи (общая модель списка нетто-цен)
func FromDomain(p *domain.ExcursionNetPrice) netpricedto.NetPriceResponse {
	return netpricedto.FromDomainNetPrice(p)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
