package regions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	"github.com/m4rkov/CSI-SalesService/internal/integrations/costasolinfo"
)

type stubFamilyRepo struct {
	family *domain.FamilyBooking
	err    error
	calls  int
}

func (r *stubFamilyRepo) GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error) {
	r.calls++
	return r.family, r.err
}

type stubCatalog struct {
	region        *costasolinfo.Region
	regionErr     error
	regionCalls   int
	byName        string
	byNameErr     error
	byNameCalls   int
}

func (c *stubCatalog) HotelRegion(ctx context.Context, hotelID int64) (*costasolinfo.Region, error) {
	c.regionCalls++
	return c.region, c.regionErr
}

func (c *stubCatalog) RegionForHotelName(ctx context.Context, name string) (string, error) {
	c.byNameCalls++
	return c.byName, c.byNameErr
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func i64(v int64) *int64 { return &v }

func TestResolveFamilyRegionShortCircuits(t *testing.T) {
	familyRepo := &stubFamilyRepo{family: &domain.FamilyBooking{ID: 9, RegionName: "CDS"}}
	catalog := &stubCatalog{}
	svc := NewService(familyRepo, catalog, "http://invalid.local", time.Second, nopLogger{})

	region, ok := svc.Resolve(context.Background(), Probe{FamilyID: i64(9), HotelID: i64(3)})
	assert.True(t, ok)
	assert.Equal(t, "CDS", region)
	assert.Equal(t, 0, catalog.regionCalls, "регион семьи не требует похода в каталог")
}

func TestResolveCatalogByHotelID(t *testing.T) {
	familyRepo := &stubFamilyRepo{family: &domain.FamilyBooking{ID: 9}}
	catalog := &stubCatalog{region: &costasolinfo.Region{Slug: "marbella"}}
	svc := NewService(familyRepo, catalog, "http://invalid.local", time.Second, nopLogger{})

	region, ok := svc.Resolve(context.Background(), Probe{FamilyID: i64(9), HotelID: i64(3)})
	assert.True(t, ok)
	assert.Equal(t, "marbella", region)
}

func TestResolveCatalogByHotelName(t *testing.T) {
	catalog := &stubCatalog{regionErr: costasolinfo.ErrNotFound, byName: "estepona"}
	svc := NewService(&stubFamilyRepo{}, catalog, "http://invalid.local", time.Second, nopLogger{})

	region, ok := svc.Resolve(context.Background(), Probe{HotelName: "Hotel Paraiso"})
	assert.True(t, ok)
	assert.Equal(t, "estepona", region)
	assert.Equal(t, 0, catalog.regionCalls, "без id отеля поиск сразу по названию")
}

func TestResolveDirectFetchFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hotels/3/", r.URL.Path)
		w.Write([]byte(`{"region": {"slug": "torremolinos"}}`))
	}))
	defer srv.Close()

	catalog := &stubCatalog{regionErr: costasolinfo.ErrNotFound, byNameErr: costasolinfo.ErrUnavailable}
	svc := NewService(&stubFamilyRepo{}, catalog, srv.URL, time.Second, nopLogger{})

	region, ok := svc.Resolve(context.Background(), Probe{HotelID: i64(3), HotelName: "Unknown"})
	assert.True(t, ok)
	assert.Equal(t, "torremolinos", region)
}

func TestResolveTextHeuristic(t *testing.T) {
	catalog := &stubCatalog{regionErr: costasolinfo.ErrNotFound, byNameErr: costasolinfo.ErrNotFound}
	svc := NewService(&stubFamilyRepo{}, catalog, "http://invalid.local", 50*time.Millisecond, nopLogger{})

	cases := []struct {
		pickup string
		hotel  string
		want   string
	}{
		{"Остановка Costa del Sol Square", "", "CDS"},
		{"", "Gran Hotel Marbella Beach", "Marbella"},
		{"parada estepona centro", "", "Estepona"},
		{"", "Málaga Palacio", "Malaga"},
	}
	for _, tc := range cases {
		region, ok := svc.Resolve(context.Background(), Probe{PickupPointName: tc.pickup, HotelName: tc.hotel})
		assert.True(t, ok, "pickup=%q hotel=%q", tc.pickup, tc.hotel)
		assert.Equal(t, tc.want, region)
	}
}

func TestResolveUnresolved(t *testing.T) {
	catalog := &stubCatalog{regionErr: costasolinfo.ErrNotFound, byNameErr: costasolinfo.ErrNotFound}
	svc := NewService(&stubFamilyRepo{err: errors.New("no rows")}, catalog, "http://invalid.local", 50*time.Millisecond, nopLogger{})

	region, ok := svc.Resolve(context.Background(), Probe{
		FamilyID:  i64(9),
		HotelName: "Hotel Nowhere",
	})
	assert.False(t, ok)
	assert.Equal(t, "", region)
}
