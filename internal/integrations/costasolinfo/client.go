package costasolinfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/m4rkov/CSI-SalesService/pkg/metrics"
	"github.com/m4rkov/CSI-SalesService/pkg/ptr"
	"github.com/m4rkov/CSI-SalesService/pkg/types"
)

// Client клиент каталога CostaSolinfo (отели, экскурсии, точки сбора, котировки)
// Конструируется явно и передается зависимостью - никаких пакетных синглтонов
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *Cache
	metrics    *metrics.Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
// m = nil отключает метрики
func NewClient(baseURL, token string, timeout time.Duration, cache *Cache, m *metrics.Metrics, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:   cache,
		metrics: m,
		log:     log,
	}
}

func (c *Client) countRequest(path, outcome string) {
	if c.metrics != nil {
		c.metrics.CatalogRequests.WithLabelValues(endpointLabel(path), outcome).Inc()
	}
}

func (c *Client) countCache(result string) {
	if c.metrics != nil {
		c.metrics.CatalogCacheHits.WithLabelValues(result).Inc()
	}
}

// endpointLabel обезличивает путь для метрик: числовые сегменты -> {id},
// иначе кардинальность лейбла растет с каждой экскурсией
func endpointLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p != "" && strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// getJSON универсальный GET с кэшированием и мягкой обработкой ошибок
//
// - 404 при allow404 -> ErrNotFound (записи нет, не авария)
// - сетевые ошибки и 5xx -> протухший кэш, если есть; иначе ErrUnavailable
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, allow404 bool) (gjson.Result, error) {
	key := cacheKey(path, params)
	if cached, ok := c.cache.Get(ctx, key); ok {
		c.countCache("hit")
		return gjson.Parse(cached), nil
	}
	c.countCache("miss")

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CSI GET %s failed: %v", path, err)
		c.countRequest(path, "error")
		return c.staleOrUnavailable(ctx, key, path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		c.countRequest(path, "ok")
	case resp.StatusCode == http.StatusNotFound && allow404:
		c.countRequest(path, "not_found")
		return gjson.Result{}, ErrNotFound
	default:
		c.countRequest(path, "error")
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("CSI GET %s unexpected status %d: %s", path, resp.StatusCode, string(body))
		return c.staleOrUnavailable(ctx, key, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("CSI GET %s failed to read body: %v", path, err)
		return c.staleOrUnavailable(ctx, key, path)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: non-JSON response from %s", ErrInvalidResponse, path)
	}

	c.cache.Set(ctx, key, string(body))
	return gjson.ParseBytes(body), nil
}

func (c *Client) staleOrUnavailable(ctx context.Context, key, path string) (gjson.Result, error) {
	if stale, ok := c.cache.GetStale(ctx, key); ok {
		c.log.Warn("CSI GET %s unavailable, serving stale cache", path)
		c.countCache("stale")
		return gjson.Parse(stale), nil
	}
	return gjson.Result{}, ErrUnavailable
}

// SearchHotels ищет отели по подстроке названия
func (c *Client) SearchHotels(ctx context.Context, q string, limit int) ([]Hotel, error) {
	params := url.Values{}
	params.Set("search", q)
	params.Set("limit", strconv.Itoa(limit))

	data, err := c.getJSON(ctx, "/hotels/", params, true)
	if err != nil {
		return nil, err
	}

	items := data.Get("items")
	if !items.Exists() {
		items = data
	}

	hotels := make([]Hotel, 0)
	items.ForEach(func(_, item gjson.Result) bool {
		h := Hotel{
			ID:   item.Get("id").Int(),
			Name: pickString(item, "name", "title"),
		}
		if region := normalizeRegion(item.Get("region")); region != nil {
			h.RegionSlug = region.Slug
		} else {
			h.RegionSlug = pickString(item, "region_slug", "region")
		}
		hotels = append(hotels, h)
		return true
	})
	return hotels, nil
}

// HotelRegion определяет регион отеля по id
// Регион может быть вложенным объектом, плоским region_id
// или прятаться под area/zone/resort
func (c *Client) HotelRegion(ctx context.Context, hotelID int64) (*Region, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf("/hotels/%d/", hotelID), nil, true)
	if err != nil {
		return nil, err
	}

	if region := normalizeRegion(data.Get("region")); region != nil {
		return region, nil
	}
	if slug := pickString(data, "region", "region_slug"); slug != "" {
		return &Region{Slug: slug}, nil
	}
	if rid := data.Get("region_id"); rid.Exists() && rid.Type == gjson.Number {
		id := rid.Int()
		return &Region{ID: &id}, nil
	}
	for _, key := range []string{"area", "zone", "resort"} {
		if region := normalizeRegion(data.Get(key)); region != nil {
			return region, nil
		}
	}
	return nil, ErrNotFound
}

// RegionForHotelName определяет регион отеля по названию (через поиск)
func (c *Client) RegionForHotelName(ctx context.Context, name string) (string, error) {
	hotels, err := c.SearchHotels(ctx, name, 1)
	if err != nil {
		return "", err
	}
	if len(hotels) == 0 || hotels[0].RegionSlug == "" {
		return "", ErrNotFound
	}
	return hotels[0].RegionSlug, nil
}

// ListExcursions получает список экскурсий каталога
func (c *Client) ListExcursions(ctx context.Context, lang, date, region string) ([]ExcursionSummary, error) {
	params := url.Values{}
	params.Set("lang", lang)
	if date != "" {
		params.Set("date", date)
	}
	if region != "" {
		params.Set("region", region)
	}

	data, err := c.getJSON(ctx, "/excursions/", params, true)
	if err != nil {
		return nil, err
	}

	items := data.Get("items")
	if !items.Exists() {
		items = data
	}

	excursions := make([]ExcursionSummary, 0)
	items.ForEach(func(_, item gjson.Result) bool {
		e := ExcursionSummary{
			ID:               item.Get("id").Int(),
			Title:            pickString(item, "localized_title", "title"),
			ShortDescription: shortDescription(item),
			Duration:         pickString(item, "duration"),
			Direction:        pickString(item, "direction"),
			Image:            pickString(item, "image"),
		}
		langs := item.Get("tour_languages")
		if !langs.Exists() {
			langs = item.Get("languages")
		}
		langs.ForEach(func(_, l gjson.Result) bool {
			e.Languages = append(e.Languages, l.String())
			return true
		})
		excursions = append(excursions, e)
		return true
	})
	return excursions, nil
}

func shortDescription(item gjson.Result) string {
	desc := stripHTML(pickString(item, "localized_description", "description"))
	if len(desc) > 220 {
		desc = strings.TrimSpace(desc[:220])
	}
	return desc
}

// ExcursionTitle получает локализованное название экскурсии
func (c *Client) ExcursionTitle(ctx context.Context, excursionID int64, lang string) (string, error) {
	params := url.Values{}
	params.Set("lang", lang)

	data, err := c.getJSON(ctx, fmt.Sprintf("/excursions/%d/", excursionID), params, true)
	if err != nil {
		return "", err
	}
	title := pickString(data, "localized_title", "title", "name")
	if title == "" {
		return "", ErrNotFound
	}
	return title, nil
}

// ExcursionPickup получает точку сбора для пары (экскурсия, отель)
// Источник отдает одну точку; время нормализуется к HH:MM,
// цены достаются из альтернативных ключей
func (c *Client) ExcursionPickup(ctx context.Context, excursionID, hotelID int64) (*PickupPoint, error) {
	params := url.Values{}
	params.Set("hotel_id", strconv.FormatInt(hotelID, 10))

	data, err := c.getJSON(ctx, fmt.Sprintf("/excursions/%d/pickup/", excursionID), params, true)
	if err != nil {
		return nil, err
	}
	if !data.IsObject() || (!data.Get("id").Exists() && !data.Get("name").Exists()) {
		return nil, ErrNotFound
	}

	p := &PickupPoint{
		Name:       pickString(data, "point", "name", "pickup_point"),
		Time:       types.NormalizeTimeString(pickString(data, "time", "pickup_time", "departure")),
		Lat:        pickNumber(data, "lat", "latitude"),
		Lng:        pickNumber(data, "lng", "longitude"),
		Address:    pickString(data, "address"),
		PriceAdult: pickNumber(data, "price_adult", "adult_price", "price_adult_eur", "priceA", "price", "adult"),
		PriceChild: pickNumber(data, "price_child", "child_price", "price_child_eur", "priceC", "child"),
		Currency:   pickString(data, "currency", "curr"),
	}
	if id := pickNumber(data, "id", "pk", "pickup_id"); id != nil {
		p.ID = int64(*id)
	}
	if p.Name == "" {
		p.Name = "Pickup"
	}
	return p, nil
}

// ExcursionRegionPrice достает базовую цену экскурсии для региона
// Каталог отдает цены в нескольких схемах, пробуем по порядку:
//
//	A) prices_by_region: [{region:{id/slug}, adult/child/currency}]
//	B) табличные prices/tariffs/pricing/price_table с теми же строками
//	C) плоские поля adult_price_{slug}/child_price_{slug}
//	D) базовые adult_price/price_adult без регионов
func (c *Client) ExcursionRegionPrice(ctx context.Context, excursionID int64, region *Region) (*PriceRow, error) {
	data, err := c.getJSON(ctx, fmt.Sprintf("/excursions/%d/", excursionID), nil, true)
	if err != nil {
		return nil, err
	}

	// A + B: массивы строк с вложенным регионом
	for _, key := range []string{"prices_by_region", "pricesByRegion", "region_prices", "prices", "tariffs", "pricing", "price_table"} {
		arr := data.Get(key)
		if !arr.IsArray() || region == nil {
			continue
		}
		var found *PriceRow
		arr.ForEach(func(_, row gjson.Result) bool {
			if matchesRegion(row, region) {
				if got := extractPriceRow(row); got != nil {
					found = got
					return false
				}
			}
			return true
		})
		if found != nil {
			return found, nil
		}
	}

	// C: поля adult_price_{slug}/child_price_{slug}
	if region != nil && region.Slug != "" {
		slug := strings.ToLower(region.Slug)
		adult := pickNumber(data, "adult_price_"+slug)
		child := pickNumber(data, "child_price_"+slug)
		if adult != nil || child != nil {
			if adult == nil {
				adult = child
			}
			if child == nil {
				child = adult
			}
			currency := pickString(data, "currency")
			if currency == "" {
				currency = "EUR"
			}
			return &PriceRow{Adult: *adult, Child: *child, Currency: currency}, nil
		}
	}

	// D: базовые цены без регионов
	adult := pickNumber(data, "adult_price", "price_adult")
	child := pickNumber(data, "child_price", "price_child")
	if adult != nil || child != nil {
		if adult == nil {
			adult = child
		}
		if child == nil {
			child = adult
		}
		currency := pickString(data, "currency")
		if currency == "" {
			currency = "EUR"
		}
		return &PriceRow{Adult: *adult, Child: *child, Currency: currency}, nil
	}

	return nil, ErrNotFound
}

// Pricing запрашивает котировку у котировщика каталога
// Роут в разных версиях админки называется по-разному, пробуем кандидатов
func (c *Client) Pricing(ctx context.Context, excursionID int64, adults, children, infants int, lang string, hotelID *int64, date string) (*PricingQuote, error) {
	params := url.Values{}
	params.Set("adults", strconv.Itoa(adults))
	params.Set("children", strconv.Itoa(children))
	params.Set("infants", strconv.Itoa(infants))
	if lang != "" {
		params.Set("lang", lang)
	}
	if hotelID != nil {
		params.Set("hotel_id", strconv.FormatInt(*hotelID, 10))
	}
	if date != "" {
		params.Set("date", date)
	}

	candidates := []string{
		fmt.Sprintf("/excursions/%d/pricing/", excursionID),
		fmt.Sprintf("/excursions/%d/quote/", excursionID),
		fmt.Sprintf("/excursions/%d/price/", excursionID),
	}

	var data gjson.Result
	var lastErr error
	found := false
	for _, path := range candidates {
		data, lastErr = c.getJSON(ctx, path, params, true)
		if lastErr == nil {
			found = true
			break
		}
		if errors.Is(lastErr, ErrNotFound) {
			continue
		}
		return nil, lastErr
	}
	if !found {
		return nil, lastErr
	}

	gross := pickNumber(data, "gross", "total", "price_total")
	if gross == nil {
		return nil, ErrNotFound
	}

	quote := &PricingQuote{
		Gross:      *gross,
		Currency:   pickString(data, "currency", "curr", "code"),
		Net:        pickNumber(data, "net", "netto"),
		Commission: pickNumber(data, "commission", "comm"),
		PerAdult:   pickNumber(data, "price_adult", "adult_price", "breakdown.adult_price"),
		PerChild:   pickNumber(data, "price_child", "child_price", "breakdown.child_price"),
	}
	if quote.Currency == "" {
		quote.Currency = "EUR"
	}
	if quote.Commission == nil && quote.Net != nil {
		quote.Commission = ptr.Ptr(quote.Gross - *quote.Net)
	}
	return quote, nil
}
