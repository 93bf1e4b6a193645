package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m4rkov/CSI-SalesService/pkg/types"
)

// BookingStatus статус продажи экскурсии
type BookingStatus string

const (
	StatusDraft     BookingStatus = "DRAFT"
	StatusPending   BookingStatus = "PENDING"
	StatusHold      BookingStatus = "HOLD"
	StatusPaid      BookingStatus = "PAID"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusExpired   BookingStatus = "EXPIRED"
)

// PriceSource источник цены брони
type PriceSource string

const (
	PriceSourcePickup PriceSource = "PICKUP"
	PriceSourceRegion PriceSource = "REGION"
	PriceSourceManual PriceSource = "MANUAL"
)

// BookingSale продажа экскурсии для семьи (или разовой группы)
// Данные внешних справочников (экскурсия, отель, точка сбора) хранятся снэпшотами
type BookingSale struct {
	ID        int64
	CompanyID int64
	GuideID   int64
	FamilyID  *int64

	ExcursionID    int64
	ExcursionTitle string

	HotelID    *int64
	HotelName  string
	RegionName string

	PickupPointID   *int64
	PickupPointName string
	PickupTime      types.TimeString
	PickupLat       *float64
	PickupLng       *float64
	PickupAddress   string

	// состав группы (CSV id-шники туристов, снэпшот на момент брони)
	TravelersCSV string

	Status BookingStatus

	BatchCode   string
	SentAt      *time.Time
	SentToEmail string

	ExcursionLanguage string
	RoomNumber        string

	PriceSource   PriceSource
	PricePerAdult float64
	PricePerChild float64

	Date     time.Time
	Adults   int
	Children int
	Infants  int

	GrossTotal float64
	NetTotal   float64
	Commission float64

	CancelledAt  *time.Time
	CancelReason string

	PaymentMethod string
	BookingCode   string

	CreatedAt time.Time
}

// IsBusy сообщает, блокирует ли бронь дату для анти-дублей
// Учитываются только DRAFT и PENDING
func (b *BookingSale) IsBusy() bool {
	return b.Status == StatusDraft || b.Status == StatusPending
}

// CanBeEdited бронь можно менять только в статусе DRAFT
func (b *BookingSale) CanBeEdited() bool {
	return b.Status == StatusDraft
}

// CanBeDeleted физически удалить можно только черновик
func (b *BookingSale) CanBeDeleted() bool {
	return b.Status == StatusDraft
}

// CanBeSent отправить партнёру можно только черновик
func (b *BookingSale) CanBeSent() bool {
	return b.Status == StatusDraft
}

// CanBeCancelled аннулировать можно любую отправленную бронь
// Черновик не аннулируется (его удаляют), CANCELLED - терминальный статус
func (b *BookingSale) CanBeCancelled() bool {
	return b.Status != StatusDraft && b.Status != StatusCancelled
}

// IsCancelled бронь аннулирована
func (b *BookingSale) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// TravelerIDs разбирает travelers_csv в список id
// Нечисловые и пустые фрагменты молча пропускаются
func (b *BookingSale) TravelerIDs() []int64 {
	return ParseTravelersCSV(b.TravelersCSV)
}

// SetTravelerIDs сохраняет состав группы в travelers_csv
func (b *BookingSale) SetTravelerIDs(ids []int64) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	b.TravelersCSV = strings.Join(parts, ",")
}

// ParseTravelersCSV разбирает строку вида "12,15,33" в список id
func ParseTravelersCSV(csv string) []int64 {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	out := make([]int64, 0, 4)
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		out = append(out, id)
	}
	return out
}

// TravelerIDSet множество id туристов для сравнения составов
type TravelerIDSet map[int64]struct{}

// NewTravelerIDSet создает множество из списка id
func NewTravelerIDSet(ids []int64) TravelerIDSet {
	s := make(TravelerIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Equal сравнивает два множества
func (s TravelerIDSet) Equal(other TravelerIDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Intersect возвращает отсортированный список общих id
func (s TravelerIDSet) Intersect(other TravelerIDSet) []int64 {
	out := make([]int64, 0)
	for id := range s {
		if _, ok := other[id]; ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SiblingFilter фильтр «занятых» броней семьи на дату (для анти-дублей)
type SiblingFilter struct {
	FamilyID int64
	Date     time.Time
	Statuses []BookingStatus
}

// BookingsFilter фильтр для списков броней
type BookingsFilter struct {
	CompanyID *int64
	FamilyID  *int64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *BookingStatus
}
