package costasolinfo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Каталог отдают разные версии админки, поэтому одно и то же поле
// может называться по-разному. Извлечение описано явными упорядоченными
// списками ключей: берется первый непустой

// pickNumber достает первое числовое значение по списку ключей
// Строковые значения парсятся, запятая как десятичный разделитель допускается
func pickNumber(r gjson.Result, keys ...string) *float64 {
	for _, k := range keys {
		v := r.Get(k)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if n := parseNumber(v); n != nil {
			return n
		}
	}
	return nil
}

// pickString достает первое непустое строковое значение по списку ключей
func pickString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := r.Get(k)
		if v.Exists() && v.Type != gjson.Null {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func parseNumber(v gjson.Result) *float64 {
	switch v.Type {
	case gjson.Number:
		n := v.Float()
		return &n
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.String()), ",", ".")
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

// normalizeRegion приводит объект региона к {id, slug}
// slug может прятаться в slug/code/name
func normalizeRegion(r gjson.Result) *Region {
	if !r.Exists() || !r.IsObject() {
		return nil
	}
	var region Region
	if id := r.Get("id"); id.Exists() && id.Type == gjson.Number {
		v := id.Int()
		region.ID = &v
	}
	region.Slug = pickString(r, "slug", "code", "name")
	if region.ID == nil && region.Slug == "" {
		return nil
	}
	return &region
}

// matchesRegion проверяет, относится ли строка цен к региону (по id или slug)
func matchesRegion(row gjson.Result, region *Region) bool {
	if region == nil {
		return false
	}
	r := row.Get("region")
	if !r.Exists() {
		return false
	}
	if region.ID != nil {
		if id := r.Get("id"); id.Exists() && id.Int() == *region.ID {
			return true
		}
	}
	if region.Slug != "" {
		slug := pickString(r, "slug", "code", "name")
		if slug != "" && strings.EqualFold(slug, region.Slug) {
			return true
		}
	}
	return false
}

// extractPriceRow достает пару цен из строки таблицы цен
// Детская цена по умолчанию равна взрослой
func extractPriceRow(row gjson.Result) *PriceRow {
	adult := pickNumber(row, "adult", "adult_price", "price_adult", "adultGross")
	child := pickNumber(row, "child", "child_price", "price_child", "childGross")
	if adult == nil && child == nil {
		return nil
	}
	if adult == nil {
		adult = child
	}
	if child == nil {
		child = adult
	}
	currency := pickString(row, "currency", "curr")
	if currency == "" {
		currency = "EUR"
	}
	return &PriceRow{Adult: *adult, Child: *child, Currency: currency}
}

var (
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spacesRe = regexp.MustCompile(`\s+`)
)

// stripHTML убирает теги и схлопывает пробелы (короткие описания экскурсий)
func stripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
