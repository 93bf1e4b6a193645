package families

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	familyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/family"
	travelerRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/traveler"
	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

// Service сервис для работы с семейными бронями и туристами
type Service struct {
	familyRepo   FamilyRepository
	travelerRepo TravelerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса семей
func NewService(familyRepo FamilyRepository, travelerRepo TravelerRepository, logger Logger) *Service {
	return &Service{
		familyRepo:   familyRepo,
		travelerRepo: travelerRepo,
		logger:       logger,
	}
}

// Create создает семейную бронь
func (s *Service) Create(ctx context.Context, req *models.CreateFamilyRequest) (*models.FamilyResponse, error) {
	if req.HotelName == "" && req.HotelID <= 0 {
		return nil, fmt.Errorf("%w: hotel is required", ErrInvalidInput)
	}

	family := &domain.FamilyBooking{
		RefCode:    req.RefCode,
		HotelID:    req.HotelID,
		HotelName:  req.HotelName,
		RegionName: req.RegionName,
		Phone:      req.Phone,
		Email:      req.Email,
		Comment:    req.Comment,
	}

	var err error
	if family.ArrivalDate, err = parseDatePtr(req.ArrivalDate); err != nil {
		return nil, fmt.Errorf("%w: invalid arrival date", ErrInvalidInput)
	}
	if family.DepartureDate, err = parseDatePtr(req.DepartureDate); err != nil {
		return nil, fmt.Errorf("%w: invalid departure date", ErrInvalidInput)
	}
	if family.ArrivalDate != nil && family.DepartureDate != nil &&
		family.DepartureDate.Before(*family.ArrivalDate) {
		return nil, fmt.Errorf("%w: departure before arrival", ErrInvalidInput)
	}

	created, err := s.familyRepo.Create(ctx, family)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created family id=%d ref=%s", created.ID, created.RefCode)
	return models.FromDomainFamily(created, nil), nil
}

// GetByID получает семью вместе с туристами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FamilyResponse, error) {
	family, err := s.familyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, familyRepo.ErrFamilyNotFound) {
			s.logger.Warn("GetByID: family id=%d not found", id)
			return nil, ErrFamilyNotFound
		}
		s.logger.Error("GetByID: repository error for family id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	travelers, err := s.travelerRepo.GetByFamilyID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load travelers for family id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to load travelers: %v", ErrInternal, err)
	}

	return models.FromDomainFamily(family, travelers), nil
}

// AddTraveler добавляет туриста в семью
// ФИО нормализуется; дубликат по (семья, фамилия, имя, дата рождения) отклоняется
func (s *Service) AddTraveler(ctx context.Context, familyID int64, req *models.AddTravelerRequest) (*models.TravelerResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	if _, err := s.familyRepo.GetByID(ctx, familyID); err != nil {
		if errors.Is(err, familyRepo.ErrFamilyNotFound) {
			s.logger.Warn("AddTraveler: family id=%d not found", familyID)
			return nil, ErrFamilyNotFound
		}
		s.logger.Error("AddTraveler: repository error for family id=%d: %v", familyID, err)
		return nil, fmt.Errorf("%w: AddTraveler - repository error: %v", ErrInternal, err)
	}

	t := &domain.Traveler{
		FamilyID:    familyID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		MiddleName:  req.MiddleName,
		Nationality: req.Nationality,
		Passport:    req.Passport,
		Phone:       req.Phone,
		Email:       req.Email,
		Note:        req.Note,
		Gender:      req.Gender,
		DocType:     req.DocType,
	}
	t.Normalize()

	var err error
	if t.DOB, err = parseDatePtr(req.DOB); err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", ErrInvalidInput)
	}
	if t.PassportExpiry, err = parseDatePtr(req.PassportExpiry); err != nil {
		return nil, fmt.Errorf("%w: invalid passport expiry", ErrInvalidInput)
	}
	if t.DocExpiry, err = parseDatePtr(req.DocExpiry); err != nil {
		return nil, fmt.Errorf("%w: invalid document expiry", ErrInvalidInput)
	}

	created, err := s.travelerRepo.Create(ctx, t)
	if err != nil {
		if errors.Is(err, travelerRepo.ErrTravelerExists) {
			s.logger.Warn("AddTraveler: traveler %s %s already exists in family id=%d",
				t.LastName, t.FirstName, familyID)
			return nil, ErrTravelerExists
		}
		s.logger.Error("AddTraveler: repository error for family id=%d: %v", familyID, err)
		return nil, fmt.Errorf("%w: AddTraveler - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddTraveler: added traveler id=%d to family id=%d", created.ID, familyID)
	return models.FromDomainTraveler(created), nil
}

// BackfillRegion записывает регион семье, если он еще пуст
// Вызывается после удачного определения региона при создании брони
func (s *Service) BackfillRegion(ctx context.Context, familyID int64, regionName string) {
	if regionName == "" {
		return
	}

	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil || family.RegionName != "" {
		return
	}

	if err := s.familyRepo.UpdateRegionName(ctx, familyID, regionName); err != nil {
		s.logger.Warn("BackfillRegion: failed to update family id=%d: %v", familyID, err)
		return
	}
	s.logger.Info("BackfillRegion: family id=%d region set to %q", familyID, regionName)
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
