package families

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
	travelerRepo "github.com/m4rkov/CSI-SalesService/internal/infra/storage/traveler"
	"github.com/m4rkov/CSI-SalesService/internal/service/families/models"
)

type stubFamilyRepo struct {
	family       *domain.FamilyBooking
	getErr       error
	created      *domain.FamilyBooking
	regionSet    string
	regionCalls  int
	updateRegErr error
}

func (r *stubFamilyRepo) Create(ctx context.Context, f *domain.FamilyBooking) (*domain.FamilyBooking, error) {
	saved := *f
	saved.ID = 9
	r.created = &saved
	return &saved, nil
}

func (r *stubFamilyRepo) GetByID(ctx context.Context, id int64) (*domain.FamilyBooking, error) {
	return r.family, r.getErr
}

func (r *stubFamilyRepo) UpdateRegionName(ctx context.Context, id int64, regionName string) error {
	r.regionCalls++
	r.regionSet = regionName
	return r.updateRegErr
}

type stubTravelerRepo struct {
	created   *domain.Traveler
	createErr error
	travelers []*domain.Traveler
}

func (r *stubTravelerRepo) Create(ctx context.Context, t *domain.Traveler) (*domain.Traveler, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := *t
	saved.ID = 11
	r.created = &saved
	return &saved, nil
}

func (r *stubTravelerRepo) GetByFamilyID(ctx context.Context, familyID int64) ([]*domain.Traveler, error) {
	return r.travelers, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func str(s string) *string { return &s }

func TestCreateFamily(t *testing.T) {
	repo := &stubFamilyRepo{}
	svc := NewService(repo, &stubTravelerRepo{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateFamilyRequest{
		RefCode:       "FAM-100",
		HotelName:     "Sol Don Pablo",
		ArrivalDate:   str("2026-09-01"),
		DepartureDate: str("2026-09-14"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "FAM-100", resp.RefCode)
}

func TestCreateFamilyRequiresHotel(t *testing.T) {
	svc := NewService(&stubFamilyRepo{}, &stubTravelerRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateFamilyRequest{RefCode: "X"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateFamilyDepartureBeforeArrival(t *testing.T) {
	svc := NewService(&stubFamilyRepo{}, &stubTravelerRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateFamilyRequest{
		HotelName:     "Sol",
		ArrivalDate:   str("2026-09-14"),
		DepartureDate: str("2026-09-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddTravelerNormalizesName(t *testing.T) {
	familyRepoStub := &stubFamilyRepo{family: &domain.FamilyBooking{ID: 9}}
	travelerRepoStub := &stubTravelerRepo{}
	svc := NewService(familyRepoStub, travelerRepoStub, nopLogger{})

	resp, err := svc.AddTraveler(context.Background(), 9, &models.AddTravelerRequest{
		FirstName: "иВАН",
		LastName:  "петров",
	})
	require.NoError(t, err)
	assert.Equal(t, "Иван", resp.FirstName)
	assert.Equal(t, "Петров", resp.LastName)
	assert.Equal(t, "Иван", travelerRepoStub.created.FirstName)
}

func TestAddTravelerDuplicate(t *testing.T) {
	svc := NewService(
		&stubFamilyRepo{family: &domain.FamilyBooking{ID: 9}},
		&stubTravelerRepo{createErr: travelerRepo.ErrTravelerExists},
		nopLogger{},
	)

	_, err := svc.AddTraveler(context.Background(), 9, &models.AddTravelerRequest{
		FirstName: "Иван", LastName: "Петров",
	})
	assert.ErrorIs(t, err, ErrTravelerExists)
}

func TestAddTravelerRequiresNames(t *testing.T) {
	svc := NewService(&stubFamilyRepo{}, &stubTravelerRepo{}, nopLogger{})

	_, err := svc.AddTraveler(context.Background(), 9, &models.AddTravelerRequest{FirstName: "Иван"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBackfillRegionOnlyWhenEmpty(t *testing.T) {
	repo := &stubFamilyRepo{family: &domain.FamilyBooking{ID: 9}}
	svc := NewService(repo, &stubTravelerRepo{}, nopLogger{})

	svc.BackfillRegion(context.Background(), 9, "CDS")
	assert.Equal(t, 1, repo.regionCalls)
	assert.Equal(t, "CDS", repo.regionSet)

	repo.family.RegionName = "Marbella"
	svc.BackfillRegion(context.Background(), 9, "CDS")
	assert.Equal(t, 1, repo.regionCalls, "регион уже задан, не перезаписываем")

	svc.BackfillRegion(context.Background(), 9, "")
	assert.Equal(t, 1, repo.regionCalls)
}
