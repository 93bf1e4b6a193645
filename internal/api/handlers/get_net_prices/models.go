package get_net_prices

import (
	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// NetPriceResponse запись нетто-цены в ответе API
type NetPriceResponse struct {
	ID               int64    `json:"id"`
	CompanyID        *int64   `json:"companyId,omitempty"`
	ExcursionID      int64    `json:"excursionId"`
	RegionSlug       string   `json:"regionSlug,omitempty"`
	Currency         string   `json:"currency"`
	NetPerAdult      *float64 `json:"netPerAdult,omitempty"`
	NetPerChild      *float64 `json:"netPerChild,omitempty"`
	ChildDiscountPct float64  `json:"childDiscountPct"`
	ValidFrom        *string  `json:"validFrom,omitempty"`
	ValidTo          *string  `json:"validTo,omitempty"`
	IsActive         bool     `json:"isActive"`
}

// NetPriceListResponse ответ со списком нетто-цен
type NetPriceListResponse struct {
	NetPrices []NetPriceResponse `json:"netPrices"`
}

// FromDomainNetPrice конвертирует domain модель в DTO
func FromDomainNetPrice(p *domain.ExcursionNetPrice) NetPriceResponse {
	resp := NetPriceResponse{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		ExcursionID:      p.ExcursionID,
		RegionSlug:       p.RegionSlug,
		Currency:         p.Currency,
		NetPerAdult:      p.NetPerAdult,
		NetPerChild:      p.NetPerChild,
		ChildDiscountPct: p.ChildDiscountPct,
		IsActive:         p.IsActive,
	}
	if p.ValidFrom != nil {
		s := p.ValidFrom.Format(domain.DateFormat)
		resp.ValidFrom = &s
	}
	if p.ValidTo != nil {
		s := p.ValidTo.Format(domain.DateFormat)
		resp.ValidTo = &s
	}
	return resp
}
