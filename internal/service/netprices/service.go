package netprices

import (
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// Resolution результат разрешения нетто-цены
type Resolution struct {
	Record      *domain.ExcursionNetPrice
	NetPerAdult float64
	NetPerChild float64
	Currency    string
}

// Service каскадный резолвер нетто-цен
// Ярусы по убыванию специфичности: (компания, регион) -> (компания, все регионы)
// -> (все компании, регион) -> (все компании, все регионы)
type Service struct {
	repo   NetPriceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса нетто-цен
func NewService(repo NetPriceRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Resolve находит действующую нетто-цену для экскурсии на дату
// Среди записей, живых по окну действия, выигрывает самая свежая valid_from
// независимо от яруса; null valid_from считается датой запроса. При равенстве
// остается первая по порядку слайса: более специфичный ярус, затем меньший id
func (s *Service) Resolve(ctx context.Context, companyID *int64, excursionID int64, regionName string, date time.Time) (*Resolution, error) {
	if excursionID <= 0 {
		return nil, fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}

	regionSlug := NormalizeRegion(regionName)

	candidates, err := s.repo.GetActiveCandidates(ctx, companyID, excursionID, regionSlug)
	if err != nil {
		s.logger.Error("Resolve: repository error for excursion=%d: %v", excursionID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	var best *domain.ExcursionNetPrice
	for _, c := range candidates {
		if !c.InRange(date) {
			continue
		}
		if best == nil || effectiveValidFrom(c, date).After(effectiveValidFrom(best, date)) {
			best = c
		}
	}

	if best == nil {
		s.logger.Info("Resolve: no net price for excursion=%d company=%v region=%q date=%s",
			excursionID, companyID, regionSlug, date.Format(domain.DateFormat))
		return nil, ErrNoNetPrice
	}

	res := &Resolution{Record: best, Currency: best.Currency}
	if best.NetPerAdult != nil {
		res.NetPerAdult = *best.NetPerAdult
	}
	if child := best.EffectiveChildNet(); child != nil {
		res.NetPerChild = *child
	}

	s.logger.Info("Resolve: excursion=%d resolved net price id=%d (company=%v region=%q)",
		excursionID, best.ID, best.CompanyID, best.RegionSlug)
	return res, nil
}

// ListByExcursion возвращает все записи нетто-цен экскурсии
func (s *Service) ListByExcursion(ctx context.Context, excursionID int64) ([]*domain.ExcursionNetPrice, error) {
	if excursionID <= 0 {
		return nil, fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}

	prices, err := s.repo.ListByExcursion(ctx, excursionID)
	if err != nil {
		s.logger.Error("ListByExcursion: repository error for excursion=%d: %v", excursionID, err)
		return nil, fmt.Errorf("%w: ListByExcursion - repository error: %v", ErrInternal, err)
	}
	return prices, nil
}

// Upsert создает или обновляет запись нетто-цены
func (s *Service) Upsert(ctx context.Context, p *domain.ExcursionNetPrice) (*domain.ExcursionNetPrice, error) {
	if p.ExcursionID <= 0 {
		return nil, fmt.Errorf("%w: excursion id is required", ErrInvalidInput)
	}
	if p.NetPerAdult == nil {
		return nil, fmt.Errorf("%w: net_per_adult is required", ErrInvalidInput)
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	if p.ChildDiscountPct == 0 {
		p.ChildDiscountPct = domain.DefaultChildDiscountPct
	}
	p.RegionSlug = NormalizeRegion(p.RegionSlug)

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("Upsert: repository error for excursion=%d: %v", p.ExcursionID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved net price id=%d for excursion=%d", saved.ID, saved.ExcursionID)
	return saved, nil
}

// NormalizeRegion приводит название региона к слагу для сравнения
// "Costa del Sol" и "costa-del-sol" указывают на один регион
func NormalizeRegion(regionName string) string {
	if regionName == "" {
		return ""
	}
	return slug.Make(regionName)
}

// effectiveValidFrom дата начала действия записи для сравнения свежести
// Null valid_from трактуется как дата запроса, то есть запись без даты
// самая свежая из живых
func effectiveValidFrom(p *domain.ExcursionNetPrice, date time.Time) time.Time {
	if p.ValidFrom == nil {
		return date
	}
	return *p.ValidFrom
}
