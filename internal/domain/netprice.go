package domain

import "time"

// ExcursionNetPrice нетто-цена экскурсии для компании/региона
// company_id = nil действует для всех компаний, region_slug = "" для всех регионов
// Активной может быть не больше одной записи на (company, excursion, region)
type ExcursionNetPrice struct {
	ID          int64
	CompanyID   *int64
	ExcursionID int64
	RegionSlug  string
	Currency    string

	NetPerAdult      *float64
	NetPerChild      *float64
	ChildDiscountPct float64

	ValidFrom *time.Time
	ValidTo   *time.Time
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InRange проверяет, попадает ли дата в окно действия записи
// Границы включительные, отсутствующая граница = без ограничения
func (p *ExcursionNetPrice) InRange(d time.Time) bool {
	if p.ValidFrom != nil && d.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && d.After(*p.ValidTo) {
		return false
	}
	return true
}

// EffectiveChildNet детская нетто-цена
// Если явной цены нет - скидка от взрослой, округление half-up до центов
func (p *ExcursionNetPrice) EffectiveChildNet() *float64 {
	if p.NetPerChild != nil {
		return p.NetPerChild
	}
	if p.NetPerAdult == nil {
		return nil
	}
	pct := p.ChildDiscountPct
	if pct == 0 {
		pct = DefaultChildDiscountPct
	}
	v := RoundMoney(*p.NetPerAdult * (100 - pct) / 100)
	return &v
}
