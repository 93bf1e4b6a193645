package regions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Probe исходные данные для определения региона
// Любое поле может отсутствовать, используется то, что есть
type Probe struct {
	FamilyID        *int64
	HotelID         *int64
	HotelName       string
	PickupPointName string
}

// Service определяет регион (зону побережья) для бронирования
// Источники проверяются по убыванию достоверности, берется первый непустой
type Service struct {
	familyRepo FamilyRepository
	catalog    CatalogClient
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewService создает новый экземпляр сервиса регионов
func NewService(familyRepo FamilyRepository, catalog CatalogClient, baseURL string, timeout time.Duration, logger Logger) *Service {
	return &Service{
		familyRepo: familyRepo,
		catalog:    catalog,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Каноничные имена зон побережья для текстовой эвристики
var regionAliases = []struct {
	needle string
	region string
}{
	{"costa del sol", "CDS"},
	{"cds", "CDS"},
	{"marbella", "Marbella"},
	{"estepona", "Estepona"},
	{"malaga", "Malaga"},
	{"málaga", "Malaga"},
}

// Resolve определяет регион по цепочке источников:
// семья -> каталог -> прямой запрос -> текстовая эвристика
// Второе значение false означает, что регион определить не удалось -
// бронирование все равно сохраняется с пустым регионом
func (s *Service) Resolve(ctx context.Context, probe Probe) (string, bool) {
	// 1. Регион семьи, если бронирование привязано к семье
	if probe.FamilyID != nil {
		family, err := s.familyRepo.GetByID(ctx, *probe.FamilyID)
		if err == nil && family.RegionName != "" {
			return family.RegionName, true
		}
		if err != nil {
			s.logger.Warn("Resolve: failed to load family id=%d: %v", *probe.FamilyID, err)
		}
	}

	// 2. Каталог: по id отеля, затем по названию
	if probe.HotelID != nil {
		region, err := s.catalog.HotelRegion(ctx, *probe.HotelID)
		if err == nil && region.Slug != "" {
			return region.Slug, true
		}
	}
	if probe.HotelName != "" {
		slug, err := s.catalog.RegionForHotelName(ctx, probe.HotelName)
		if err == nil && slug != "" {
			return slug, true
		}
	}

	// 3. Прямой запрос к каталогу мимо клиента-обертки
	if probe.HotelID != nil {
		if slug := s.fetchRegionDirect(ctx, *probe.HotelID); slug != "" {
			return slug, true
		}
	}

	// 4. Текстовая эвристика по названию точки сбора и отеля
	haystack := strings.ToLower(probe.PickupPointName + " " + probe.HotelName)
	for _, alias := range regionAliases {
		if strings.Contains(haystack, alias.needle) {
			return alias.region, true
		}
	}

	s.logger.Warn("Resolve: region not resolved for hotel=%v name=%q pickup=%q",
		probe.HotelID, probe.HotelName, probe.PickupPointName)
	return "", false
}

// fetchRegionDirect последний сетевой шанс: сырой GET к каталогу
// Используется, когда клиент-обертка недоступен или ничего не нашел
func (s *Service) fetchRegionDirect(ctx context.Context, hotelID int64) string {
	url := fmt.Sprintf("%s/hotels/%d/", s.baseURL, hotelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("fetchRegionDirect: GET %s failed: %v", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	data := gjson.ParseBytes(body)
	for _, path := range []string{"region.slug", "region.name", "region", "region_slug", "area.name", "zone.name"} {
		if v := data.Get(path); v.Exists() && v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}
