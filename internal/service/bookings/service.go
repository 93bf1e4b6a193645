package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	bookingRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/booking"
	companyRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/company"
	"github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
	"github.com/m4rkov/CSI-SalesService/internal/service/regions"
	"github.com/m4rkov/CSI-SalesService/pkg/metrics"
	"github.com/m4rkov/CSI-SalesService/pkg/types"
)

const batchCodeLength = 8

// Service сервис для работы с бронями после создания:
// чтение, правка черновиков, отправка партнеру, аннуляция
type Service struct {
	bookingRepo    BookingRepository
	companyRepo    CompanyRepository
	travelerRepo   TravelerRepository
	catalog        CatalogClient
	mailer         Mailer
	regionResolver RegionResolver
	metrics        *metrics.Metrics
	logger         Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	bookingRepo BookingRepository,
	companyRepo CompanyRepository,
	travelerRepo TravelerRepository,
	catalog CatalogClient,
	mailer Mailer,
	regionResolver RegionResolver,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		companyRepo:    companyRepo,
		travelerRepo:   travelerRepo,
		catalog:        catalog,
		mailer:         mailer,
		regionResolver: regionResolver,
		metrics:        m,
		logger:         logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// List получает брони с фильтрацией по компании, семье, периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update правит черновик брони
// Не-черновики неизменяемы; после правки регион дозаполняется, если пуст
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeEdited() {
		s.logger.Warn("Update: booking id=%d is not editable, status=%s", id, booking.Status)
		return nil, ErrNotDraft
	}

	if err := s.applyUpdate(booking, req); err != nil {
		return nil, err
	}

	// Дозаполняем регион, если после правки он пуст
	if booking.RegionName == "" {
		probe := regions.Probe{
			FamilyID:        booking.FamilyID,
			HotelID:         booking.HotelID,
			HotelName:       booking.HotelName,
			PickupPointName: booking.PickupPointName,
		}
		if region, ok := s.regionResolver.Resolve(ctx, probe); ok {
			booking.RegionName = region
		}
	}

	recomputeTotals(booking)

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Delete физически удаляет черновик
func (s *Service) Delete(ctx context.Context, id int64) error {
	booking, err := s.loadBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if !booking.CanBeDeleted() {
		s.logger.Warn("Delete: booking id=%d is not a draft, status=%s", id, booking.Status)
		return ErrNotDraft
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted draft booking id=%d", id)
	return nil
}

// Send отправляет бронь партнеру: письмо-заказ на email компании
// Статус меняется на PENDING только после успешной отправки
func (s *Service) Send(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, "Send", id)
	if err != nil {
		return nil, err
	}

	if !booking.CanBeSent() {
		s.logger.Warn("Send: booking id=%d cannot be sent, status=%s", id, booking.Status)
		return nil, ErrCannotSend
	}

	company, err := s.companyRepo.GetByID(ctx, booking.CompanyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("Send: company id=%d not found for booking id=%d", booking.CompanyID, id)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("Send: failed to load company id=%d: %v", booking.CompanyID, err)
		return nil, fmt.Errorf("%w: Send - failed to load company: %v", ErrInternal, err)
	}
	if company.EmailForOrders == "" {
		s.logger.Warn("Send: company id=%d has no order email", company.ID)
		return nil, ErrNoOrderEmail
	}

	travelers, err := s.travelerRepo.GetByIDs(ctx, booking.TravelerIDs())
	if err != nil {
		s.logger.Error("Send: failed to load travelers for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Send - failed to load travelers: %v", ErrInternal, err)
	}

	batchCode, err := domain.GenerateCode(batchCodeLength)
	if err != nil {
		return nil, fmt.Errorf("%w: Send - failed to generate batch code: %v", ErrInternal, err)
	}

	subject, htmlBody, textBody := s.buildOrderEmail(ctx, booking, travelers, batchCode)
	if err := s.mailer.Send(ctx, subject, htmlBody, textBody, []string{company.EmailForOrders}); err != nil {
		s.countEmail("order", "error")
		s.logger.Error("Send: failed to send order email for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	s.countEmail("order", "ok")

	if err := s.bookingRepo.MarkSent(ctx, id, batchCode, company.EmailForOrders); err != nil {
		s.logger.Error("Send: failed to mark booking id=%d as sent: %v", id, err)
		return nil, fmt.Errorf("%w: Send - failed to mark sent: %v", ErrInternal, err)
	}

	s.logger.Info("Send: booking id=%d sent to %s, batch=%s", id, company.EmailForOrders, batchCode)
	return s.GetByID(ctx, id)
}

// Cancel аннулирует отправленную бронь
// Повторная аннуляция идемпотентна: успех без письма, cancelled_at не трогается
// Черновики не аннулируются, их удаляют
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d already cancelled, no-op", id)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Письмо об аннуляции - best effort, ошибка не откатывает статус
	s.sendCancellationEmail(ctx, booking, reason)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return s.GetByID(ctx, id)
}

// UpdateStatus меняет статус отправленной брони
// Допустимы PENDING -> HOLD/PAID/EXPIRED и HOLD -> PAID/EXPIRED
// Аннуляция идет через Cancel, не через смену статуса
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.loadBooking(ctx, "UpdateStatus", id)
	if err != nil {
		return err
	}

	if !statusTransitionAllowed(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, id)
		return ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", id, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) loadBooking(ctx context.Context, op string, id int64) (*domain.BookingSale, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) applyUpdate(b *domain.BookingSale, req *models.UpdateBookingRequest) error {
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *req.Date)
		}
		b.Date = d
	}
	if req.Adults != nil {
		b.Adults = *req.Adults
	}
	if req.Children != nil {
		b.Children = *req.Children
	}
	if req.Infants != nil {
		b.Infants = *req.Infants
	}
	if b.Adults < 0 || b.Children < 0 || b.Infants < 0 || b.Adults+b.Children == 0 {
		return fmt.Errorf("%w: at least one adult or child required", ErrInvalidInput)
	}
	if req.ExcursionLanguage != nil {
		if !domain.IsValidExcursionLanguage(*req.ExcursionLanguage) {
			return fmt.Errorf("%w: unsupported excursion language %q", ErrInvalidInput, *req.ExcursionLanguage)
		}
		b.ExcursionLanguage = *req.ExcursionLanguage
	}
	if req.RoomNumber != nil {
		b.RoomNumber = *req.RoomNumber
	}
	if req.PickupPointName != nil {
		b.PickupPointName = *req.PickupPointName
	}
	if req.PickupTime != nil {
		b.PickupTime = types.NormalizeTimeString(*req.PickupTime)
	}
	if req.PricePerAdult != nil {
		b.PricePerAdult = domain.RoundMoney(*req.PricePerAdult)
		b.PriceSource = domain.PriceSourceManual
	}
	if req.PricePerChild != nil {
		b.PricePerChild = domain.RoundMoney(*req.PricePerChild)
		b.PriceSource = domain.PriceSourceManual
	}
	if req.TravelerIDs != nil {
		b.SetTravelerIDs(req.TravelerIDs)
	}
	return nil
}

// recomputeTotals пересчитывает брутто и комиссию после правки
// Нетто-итог остается как был рассчитан при создании
func recomputeTotals(b *domain.BookingSale) {
	b.GrossTotal = domain.RoundMoney(
		b.PricePerAdult*float64(b.Adults) + b.PricePerChild*float64(b.Children))
	if b.NetTotal > 0 {
		b.Commission = domain.RoundMoney(b.GrossTotal - b.NetTotal)
	}
}

func (s *Service) sendCancellationEmail(ctx context.Context, b *domain.BookingSale, reason string) {
	recipient := b.SentToEmail
	if recipient == "" {
		company, err := s.companyRepo.GetByID(ctx, b.CompanyID)
		if err != nil || company.EmailForOrders == "" {
			s.logger.Warn("Cancel: no recipient for cancellation email, booking id=%d", b.ID)
			return
		}
		recipient = company.EmailForOrders
	}

	subject, htmlBody, textBody := s.buildCancellationEmail(ctx, b, reason)
	if err := s.mailer.Send(ctx, subject, htmlBody, textBody, []string{recipient}); err != nil {
		s.countEmail("cancellation", "error")
		s.logger.Error("Cancel: failed to send cancellation email for booking id=%d: %v", b.ID, err)
		return
	}
	s.countEmail("cancellation", "ok")
}

func (s *Service) countEmail(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.EmailsSent.WithLabelValues(kind, outcome).Inc()
	}
}

func statusTransitionAllowed(from, to domain.BookingStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusHold || to == domain.StatusPaid || to == domain.StatusExpired
	case domain.StatusHold:
		return to == domain.StatusPaid || to == domain.StatusExpired
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
