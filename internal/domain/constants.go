package domain

// Формат дат в API и БД
const DateFormat = "2006-01-02"

// Валюта по умолчанию, когда каталог её не отдает
const DefaultCurrency = "EUR"

// Скидка на детскую нетто-цену по умолчанию, процентов
const DefaultChildDiscountPct = 25.0

// Языки проведения экскурсий
var ExcursionLanguages = []string{"ru", "en", "es", "fr", "de"}

// IsValidExcursionLanguage проверяет код языка экскурсии
func IsValidExcursionLanguage(lang string) bool {
	for _, l := range ExcursionLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// BusyStatuses статусы, блокирующие дату семьи для анти-дублей
var BusyStatuses = []BookingStatus{StatusDraft, StatusPending}

// IsValidStatus проверяет статус брони
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusHold, StatusPaid, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// IsValidPriceSource проверяет источник цены
func IsValidPriceSource(s PriceSource) bool {
	switch s {
	case PriceSourcePickup, PriceSourceRegion, PriceSourceManual:
		return true
	}
	return false
}
