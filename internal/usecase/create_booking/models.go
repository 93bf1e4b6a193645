package create_booking

import (
	bookingmodels "github.com/m4rkov/CSI-SalesService/internal/service/bookings/models"
)

// Request запрос на создание брони
// Снэпшоты экскурсии, отеля и точки сбора передаются как есть:
// источником истины на момент продажи становится сама бронь
type Request struct {
	CompanyID int64  `json:"companyId"`
	GuideID   int64  `json:"guideId"`
	FamilyID  *int64 `json:"familyId,omitempty"`

	ExcursionID    int64  `json:"excursionId"`
	ExcursionTitle string `json:"excursionTitle,omitempty"`

	HotelID    *int64 `json:"hotelId,omitempty"`
	HotelName  string `json:"hotelName,omitempty"`
	RegionName string `json:"regionName,omitempty"`

	PickupPointID   *int64   `json:"pickupPointId,omitempty"`
	PickupPointName string   `json:"pickupPointName,omitempty"`
	PickupTime      string   `json:"pickupTime,omitempty"` // "HH:MM"
	PickupLat       *float64 `json:"pickupLat,omitempty"`
	PickupLng       *float64 `json:"pickupLng,omitempty"`
	PickupAddress   string   `json:"pickupAddress,omitempty"`

	TravelerIDs []int64 `json:"travelerIds,omitempty"`

	ExcursionLanguage string `json:"excursionLanguage,omitempty"` // default "ru"
	RoomNumber        string `json:"roomNumber,omitempty"`

	PriceSource   string   `json:"priceSource,omitempty"` // PICKUP / REGION / MANUAL
	PricePerAdult *float64 `json:"pricePerAdult,omitempty"`
	PricePerChild *float64 `json:"pricePerChild,omitempty"`

	Date     string `json:"date"` // "2026-05-14"
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`

	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// Response ответ с созданной бронью (общее DTO броней)
type Response = bookingmodels.BookingResponse
