package domain

import (
	"regexp"
	"strings"
	"time"
)

// FamilyBooking семейная бронь (групповая единица размещения)
// Создается импортом или через API; region_name может быть пустым
// и заполняется позже из каталога
type FamilyBooking struct {
	ID         int64
	RefCode    string
	HotelID    int64
	HotelName  string
	RegionName string

	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Phone         string
	Email         string
	Comment       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Traveler турист, принадлежит ровно одной семье
type Traveler struct {
	ID       int64
	FamilyID int64

	FirstName  string
	LastName   string
	MiddleName string
	DOB        *time.Time

	Nationality    string
	Passport       string
	PassportExpiry *time.Time
	Phone          string
	Email          string
	Note           string
	Gender         string // "M" / "F"
	DocType        string // "passport" / "dni"
	DocExpiry      *time.Time
}

var spacesRe = regexp.MustCompile(`\s+`)

// NormalizeName схлопывает пробелы и приводит имя к Title Case
// Применяется перед сохранением туриста, чтобы уникальность
// (семья, фамилия, имя, дата рождения) не ломалась о регистр
func NormalizeName(s string) string {
	s = spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}

// Normalize нормализует ФИО туриста
func (t *Traveler) Normalize() {
	t.LastName = NormalizeName(t.LastName)
	t.FirstName = NormalizeName(t.FirstName)
	t.MiddleName = NormalizeName(t.MiddleName)
}
