package models

import (
	"errors"
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на аннуляцию брони
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// UpdateStatusRequest запрос на смену статуса брони
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingRequest запрос на правку черновика
// Указанные поля перезаписывают текущие, nil = без изменения
type UpdateBookingRequest struct {
	Date              *string  `json:"date,omitempty"`
	Adults            *int     `json:"adults,omitempty"`
	Children          *int     `json:"children,omitempty"`
	Infants           *int     `json:"infants,omitempty"`
	ExcursionLanguage *string  `json:"excursionLanguage,omitempty"`
	RoomNumber        *string  `json:"roomNumber,omitempty"`
	PickupPointName   *string  `json:"pickupPointName,omitempty"`
	PickupTime        *string  `json:"pickupTime,omitempty"`
	PricePerAdult     *float64 `json:"pricePerAdult,omitempty"`
	PricePerChild     *float64 `json:"pricePerChild,omitempty"`
	PaymentMethod     *string  `json:"paymentMethod,omitempty"`
	TravelerIDs       []int64  `json:"travelerIds,omitempty"`
}

// ListBookingsRequest запрос на список броней с фильтрацией
type ListBookingsRequest struct {
	CompanyID *int64  `json:"companyId,omitempty"`
	FamilyID  *int64  `json:"familyId,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CompanyID: r.CompanyID,
		FamilyID:  r.FamilyID,
	}

	if r.StartDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными брони
type BookingResponse struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	GuideID   int64  `json:"guideId"`
	FamilyID  *int64 `json:"familyId,omitempty"`

	ExcursionID    int64  `json:"excursionId"`
	ExcursionTitle string `json:"excursionTitle"`

	HotelID    *int64 `json:"hotelId,omitempty"`
	HotelName  string `json:"hotelName,omitempty"`
	RegionName string `json:"regionName,omitempty"`

	PickupPointID   *int64   `json:"pickupPointId,omitempty"`
	PickupPointName string   `json:"pickupPointName,omitempty"`
	PickupTime      string   `json:"pickupTime,omitempty"` // "HH:MM"
	PickupLat       *float64 `json:"pickupLat,omitempty"`
	PickupLng       *float64 `json:"pickupLng,omitempty"`
	PickupAddress   string   `json:"pickupAddress,omitempty"`

	TravelerIDs []int64 `json:"travelerIds"`

	Status      string  `json:"status"`
	BatchCode   string  `json:"batchCode,omitempty"`
	SentAt      *string `json:"sentAt,omitempty"` // ISO 8601
	SentToEmail string  `json:"sentToEmail,omitempty"`

	ExcursionLanguage string `json:"excursionLanguage"`
	RoomNumber        string `json:"roomNumber,omitempty"`

	PriceSource   string  `json:"priceSource"`
	PricePerAdult float64 `json:"pricePerAdult"`
	PricePerChild float64 `json:"pricePerChild"`

	Date     string `json:"date"` // "2026-05-14"
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`

	GrossTotal float64 `json:"grossTotal"`
	NetTotal   float64 `json:"netTotal"`
	Commission float64 `json:"commission"`

	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601
	CancelReason string  `json:"cancelReason,omitempty"`

	PaymentMethod string `json:"paymentMethod,omitempty"`
	BookingCode   string `json:"bookingCode"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком броней
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.BookingSale) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		CompanyID:         b.CompanyID,
		GuideID:           b.GuideID,
		FamilyID:          b.FamilyID,
		ExcursionID:       b.ExcursionID,
		ExcursionTitle:    b.ExcursionTitle,
		HotelID:           b.HotelID,
		HotelName:         b.HotelName,
		RegionName:        b.RegionName,
		PickupPointID:     b.PickupPointID,
		PickupPointName:   b.PickupPointName,
		PickupTime:        b.PickupTime.String(),
		PickupLat:         b.PickupLat,
		PickupLng:         b.PickupLng,
		PickupAddress:     b.PickupAddress,
		TravelerIDs:       b.TravelerIDs(),
		Status:            string(b.Status),
		BatchCode:         b.BatchCode,
		SentToEmail:       b.SentToEmail,
		ExcursionLanguage: b.ExcursionLanguage,
		RoomNumber:        b.RoomNumber,
		PriceSource:       string(b.PriceSource),
		PricePerAdult:     b.PricePerAdult,
		PricePerChild:     b.PricePerChild,
		Date:              b.Date.Format(domain.DateFormat),
		Adults:            b.Adults,
		Children:          b.Children,
		Infants:           b.Infants,
		GrossTotal:        b.GrossTotal,
		NetTotal:          b.NetTotal,
		Commission:        b.Commission,
		CancelReason:      b.CancelReason,
		PaymentMethod:     b.PaymentMethod,
		BookingCode:       b.BookingCode,
		CreatedAt:         b.CreatedAt,
	}
	if resp.TravelerIDs == nil {
		resp.TravelerIDs = []int64{}
	}

	if b.SentAt != nil {
		resp.SentAt = ptr.Ptr(b.SentAt.Format(time.RFC3339))
	}
	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingSale) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
