package models

import (
	"time"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

// Request модели

// CreateFamilyRequest запрос на создание семейной брони
type CreateFamilyRequest struct {
	RefCode       string  `json:"refCode"`
	HotelID       int64   `json:"hotelId"`
	HotelName     string  `json:"hotelName"`
	RegionName    string  `json:"regionName,omitempty"`
	ArrivalDate   *string `json:"arrivalDate,omitempty"`   // "2026-05-10"
	DepartureDate *string `json:"departureDate,omitempty"` // "2026-05-24"
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	Comment       string  `json:"comment,omitempty"`
}

// AddTravelerRequest запрос на добавление туриста в семью
type AddTravelerRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	MiddleName     string  `json:"middleName,omitempty"`
	DOB            *string `json:"dob,omitempty"` // "1988-02-14"
	Nationality    string  `json:"nationality,omitempty"`
	Passport       string  `json:"passport,omitempty"`
	PassportExpiry *string `json:"passportExpiry,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Email          string  `json:"email,omitempty"`
	Note           string  `json:"note,omitempty"`
	Gender         string  `json:"gender,omitempty"`  // "M" / "F"
	DocType        string  `json:"docType,omitempty"` // "passport" / "dni"
	DocExpiry      *string `json:"docExpiry,omitempty"`
}

// Response модели

// TravelerResponse турист в ответе API
type TravelerResponse struct {
	ID         int64  `json:"id"`
	FamilyID   int64  `json:"familyId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName,omitempty"`
	DOB        string `json:"dob,omitempty"`

	Nationality    string `json:"nationality,omitempty"`
	Passport       string `json:"passport,omitempty"`
	PassportExpiry string `json:"passportExpiry,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Note           string `json:"note,omitempty"`
	Gender         string `json:"gender,omitempty"`
	DocType        string `json:"docType,omitempty"`
	DocExpiry      string `json:"docExpiry,omitempty"`
}

// FamilyResponse семейная бронь с туристами
type FamilyResponse struct {
	ID            int64              `json:"id"`
	RefCode       string             `json:"refCode"`
	HotelID       int64              `json:"hotelId"`
	HotelName     string             `json:"hotelName"`
	RegionName    string             `json:"regionName,omitempty"`
	ArrivalDate   string             `json:"arrivalDate,omitempty"`
	DepartureDate string             `json:"departureDate,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Email         string             `json:"email,omitempty"`
	Comment       string             `json:"comment,omitempty"`
	Travelers     []TravelerResponse `json:"travelers"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// Методы конвертации

// FromDomainFamily конвертирует domain модель в DTO
func FromDomainFamily(f *domain.FamilyBooking, travelers []*domain.Traveler) *FamilyResponse {
	if f == nil {
		return nil
	}

	resp := &FamilyResponse{
		ID:         f.ID,
		RefCode:    f.RefCode,
		HotelID:    f.HotelID,
		HotelName:  f.HotelName,
		RegionName: f.RegionName,
		Phone:      f.Phone,
		Email:      f.Email,
		Comment:    f.Comment,
		Travelers:  make([]TravelerResponse, 0, len(travelers)),
		CreatedAt:  f.CreatedAt,
	}
	if f.ArrivalDate != nil {
		resp.ArrivalDate = f.ArrivalDate.Format(domain.DateFormat)
	}
	if f.DepartureDate != nil {
		resp.DepartureDate = f.DepartureDate.Format(domain.DateFormat)
	}
	for _, t := range travelers {
		resp.Travelers = append(resp.Travelers, *FromDomainTraveler(t))
	}
	return resp
}

// FromDomainTraveler конвертирует туриста в DTO
func FromDomainTraveler(t *domain.Traveler) *TravelerResponse {
	if t == nil {
		return nil
	}

	resp := &TravelerResponse{
		ID:          t.ID,
		FamilyID:    t.FamilyID,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		MiddleName:  t.MiddleName,
		Nationality: t.Nationality,
		Passport:    t.Passport,
		Phone:       t.Phone,
		Email:       t.Email,
		Note:        t.Note,
		Gender:      t.Gender,
		DocType:     t.DocType,
	}
	if t.DOB != nil {
		resp.DOB = t.DOB.Format(domain.DateFormat)
	}
	if t.PassportExpiry != nil {
		resp.PassportExpiry = t.PassportExpiry.Format(domain.DateFormat)
	}
	if t.DocExpiry != nil {
		resp.DocExpiry = t.DocExpiry.Format(domain.DateFormat)
	}
	return resp
}
