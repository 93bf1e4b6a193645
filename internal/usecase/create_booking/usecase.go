package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	companyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/company"
	familyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/family"
	bookingmodels "github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
	"github.com/m4rkov/CSI-SalesService/internal/service/netprices"
	"github.com/m4rkov/CSI-SalesService/internal/service/pricing"
	"github.com/m4rkov/CSI-SalesService/internal/service/regions"
	"github.com/m4rkov/CSI-SalesService/pkg/txmanager"
	"github.com/m4rkov/CSI-SalesService/pkg/types"
)

// UseCase use case создания брони
type UseCase struct {
	bookingRepo      BookingRepository
	companyRepo      CompanyRepository
	familyRepo       FamilyRepository
	regionResolver   RegionResolver
	regionBackfiller RegionBackfiller
	pricingEngine    PricingEngine
	netPriceResolver NetPriceResolver
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	companyRepo CompanyRepository,
	familyRepo FamilyRepository,
	regionResolver RegionResolver,
	regionBackfiller RegionBackfiller,
	pricingEngine PricingEngine,
	netPriceResolver NetPriceResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		companyRepo:      companyRepo,
		familyRepo:       familyRepo,
		regionResolver:   regionResolver,
		regionBackfiller: regionBackfiller,
		pricingEngine:    pricingEngine,
		netPriceResolver: netPriceResolver,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет создание брони
// Анти-дубли и вставка идут в сериализуемой транзакции: конкурентные
// создания для одной семьи не могут проскочить мимо проверок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: company=%d, guide=%d, excursion=%d, family=%v, date=%s",
		req.CompanyID, req.GuideID, req.ExcursionID, req.FamilyID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Компания должна существовать и быть активной
	company, err := uc.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	if !company.IsActive {
		uc.logger.Warn("CreateBooking: company id=%d is inactive", req.CompanyID)
		return nil, ErrCompanyInactive
	}

	// 3. Семья, если бронь привязана к семье
	if req.FamilyID != nil {
		if _, err := uc.familyRepo.GetByID(ctx, *req.FamilyID); err != nil {
			if errors.Is(err, familyRepo.ErrFamilyNotFound) {
				uc.logger.Warn("CreateBooking: family id=%d not found", *req.FamilyID)
				return nil, ErrFamilyNotFound
			}
			uc.logger.Error("CreateBooking: failed to get family id=%d: %v", *req.FamilyID, err)
			return nil, fmt.Errorf("%w: failed to get family: %v", ErrInternal, err)
		}
	}

	booking := uc.buildBooking(req, date)

	// 4. Определяем регион; бронь сохраняется и с пустым регионом
	if booking.RegionName == "" {
		probe := regions.Probe{
			FamilyID:        booking.FamilyID,
			HotelID:         booking.HotelID,
			HotelName:       booking.HotelName,
			PickupPointName: booking.PickupPointName,
		}
		if region, ok := uc.regionResolver.Resolve(ctx, probe); ok {
			booking.RegionName = region
			if booking.FamilyID != nil {
				uc.regionBackfiller.BackfillRegion(ctx, *booking.FamilyID, region)
			}
		}
	}

	// 5. Цены: явные руками или водопад котировок
	if err := uc.resolvePrices(ctx, req, booking); err != nil {
		return nil, err
	}

	// 6. Нетто и комиссия, когда нетто-цена настроена
	uc.resolveNetTotals(ctx, booking)

	// 7. Анти-дубли и вставка в сериализуемой транзакции
	var result *domain.BookingSale
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if booking.FamilyID != nil {
			siblings, err := uc.bookingRepo.GetBusySiblings(txCtx, domain.SiblingFilter{
				FamilyID: *booking.FamilyID,
				Date:     booking.Date,
				Statuses: domain.BusyStatuses,
			})
			if err != nil {
				// Конфликт сериализации не заворачиваем: клиент получает 409 и повторяет
				if txmanager.IsSerialization(err) {
					return err
				}
				uc.logger.Error("CreateBooking: failed to get busy siblings: %v", err)
				return fmt.Errorf("%w: failed to get busy siblings: %v", ErrInternal, err)
			}

			if err := checkConflicts(booking, siblings); err != nil {
				uc.logger.Warn("CreateBooking: conflict for family id=%d: %v", *booking.FamilyID, err)
				return err
			}
		}

		code, err := domain.GenerateCode(domain.BookingCodeLength)
		if err != nil {
			return fmt.Errorf("%w: failed to generate booking code: %v", ErrInternal, err)
		}
		booking.BookingCode = code

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if txmanager.IsSerialization(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d code=%s", result.ID, result.BookingCode)
	return bookingmodels.FromDomainBooking(result), nil
}

// buildBooking собирает черновик брони из запроса
func (uc *UseCase) buildBooking(req *Request, date time.Time) *domain.BookingSale {
	booking := &domain.BookingSale{
		CompanyID:         req.CompanyID,
		GuideID:           req.GuideID,
		FamilyID:          req.FamilyID,
		ExcursionID:       req.ExcursionID,
		ExcursionTitle:    req.ExcursionTitle,
		HotelID:           req.HotelID,
		HotelName:         req.HotelName,
		RegionName:        req.RegionName,
		PickupPointID:     req.PickupPointID,
		PickupPointName:   req.PickupPointName,
		PickupTime:        types.NormalizeTimeString(req.PickupTime),
		PickupLat:         req.PickupLat,
		PickupLng:         req.PickupLng,
		PickupAddress:     req.PickupAddress,
		Status:            domain.StatusDraft,
		ExcursionLanguage: req.ExcursionLanguage,
		RoomNumber:        req.RoomNumber,
		Date:              date,
		Adults:            req.Adults,
		Children:          req.Children,
		Infants:           req.Infants,
		PaymentMethod:     req.PaymentMethod,
	}
	if booking.ExcursionLanguage == "" {
		booking.ExcursionLanguage = "ru"
	}
	booking.SetTravelerIDs(req.TravelerIDs)
	return booking
}

// resolvePrices заполняет per-head цены, источник и брутто-итог
// Ручные цены выигрывают; иначе водопад котировок (CSI -> точка сбора -> регион)
func (uc *UseCase) resolvePrices(ctx context.Context, req *Request, booking *domain.BookingSale) error {
	manual := req.PriceSource == string(domain.PriceSourceManual) ||
		(req.PriceSource == "" && req.PricePerAdult != nil)

	if manual {
		if req.PricePerAdult == nil {
			return fmt.Errorf("%w: manual price source requires pricePerAdult", ErrInvalidInput)
		}
		booking.PriceSource = domain.PriceSourceManual
		booking.PricePerAdult = domain.RoundMoney(*req.PricePerAdult)
		if req.PricePerChild != nil {
			booking.PricePerChild = domain.RoundMoney(*req.PricePerChild)
		}
		booking.GrossTotal = domain.RoundMoney(
			booking.PricePerAdult*float64(booking.Adults) + booking.PricePerChild*float64(booking.Children))
		return nil
	}

	quote, err := uc.pricingEngine.Quote(ctx, pricing.QuoteRequest{
		ExcursionID:    booking.ExcursionID,
		HotelID:        booking.HotelID,
		Date:           req.Date,
		Language:       booking.ExcursionLanguage,
		Adults:         booking.Adults,
		Children:       booking.Children,
		Infants:        booking.Infants,
		RegionOverride: booking.RegionName,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrPricingUnavailable) {
			uc.logger.Warn("CreateBooking: pricing unavailable for excursion=%d", booking.ExcursionID)
			return ErrPricingUnavailable
		}
		uc.logger.Error("CreateBooking: pricing failed for excursion=%d: %v", booking.ExcursionID, err)
		return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	booking.GrossTotal = quote.Gross
	booking.PriceSource = bookingPriceSource(quote.Source)
	if quote.PerAdult != nil {
		booking.PricePerAdult = *quote.PerAdult
	} else if booking.Adults > 0 {
		booking.PricePerAdult = domain.RoundMoney(quote.Gross / float64(booking.Adults))
	}
	if quote.PerChild != nil {
		booking.PricePerChild = *quote.PerChild
	}
	if quote.Net != nil {
		booking.NetTotal = *quote.Net
		booking.Commission = domain.RoundMoney(booking.GrossTotal - booking.NetTotal)
	}
	return nil
}

// resolveNetTotals подтягивает нетто-итог из настроенных нетто-цен
// Отсутствие нетто-цены не мешает созданию брони
func (uc *UseCase) resolveNetTotals(ctx context.Context, booking *domain.BookingSale) {
	if booking.NetTotal > 0 {
		return
	}

	res, err := uc.netPriceResolver.Resolve(ctx, &booking.CompanyID, booking.ExcursionID, booking.RegionName, booking.Date)
	if err != nil {
		if !errors.Is(err, netprices.ErrNoNetPrice) {
			uc.logger.Error("CreateBooking: net price resolution failed: %v", err)
		}
		return
	}

	booking.NetTotal = domain.RoundMoney(
		res.NetPerAdult*float64(booking.Adults) + res.NetPerChild*float64(booking.Children))
	booking.Commission = domain.RoundMoney(booking.GrossTotal - booking.NetTotal)
}

// bookingPriceSource маппинг яруса котировки в источник цены брони
// Котировщик каталога считается прямым аналогом цены точки сбора
func bookingPriceSource(source pricing.QuoteSource) domain.PriceSource {
	if source == pricing.SourceRegion {
		return domain.PriceSourceRegion
	}
	return domain.PriceSourcePickup
}
