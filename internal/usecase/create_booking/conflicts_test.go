package create_booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4rkov/CSI-SalesService/internal/domain"
)

func booking(excursionID int64, travelerIDs []int64) *domain.BookingSale {
	b := &domain.BookingSale{ExcursionID: excursionID, Adults: 2, ExcursionLanguage: "ru"}
	b.SetTravelerIDs(travelerIDs)
	return b
}

func TestCheckConflictsDuplicateSameExcursionSameParty(t *testing.T) {
	candidate := booking(7, []int64{1, 2})
	siblings := []*domain.BookingSale{booking(7, []int64{2, 1})}

	err := checkConflicts(candidate, siblings)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestCheckConflictsSameExcursionDifferentParty(t *testing.T) {
	candidate := booking(7, []int64{1, 2})
	siblings := []*domain.BookingSale{booking(7, []int64{2, 3})}

	assert.NoError(t, checkConflicts(candidate, siblings))
}

func TestCheckConflictsSameExcursionDifferentPickup(t *testing.T) {
	p1, p2 := int64(10), int64(20)
	candidate := booking(7, []int64{1, 2})
	candidate.PickupPointID = &p1
	sibling := booking(7, []int64{1, 2})
	sibling.PickupPointID = &p2

	assert.NoError(t, checkConflicts(candidate, []*domain.BookingSale{sibling}),
		"разные точки сбора - это разные продажи")
}

func TestCheckConflictsSameExcursionPickupUnsetOnOneSide(t *testing.T) {
	p1 := int64(10)
	candidate := booking(7, []int64{1, 2})
	candidate.PickupPointID = &p1
	sibling := booking(7, []int64{1, 2})

	err := checkConflicts(candidate, []*domain.BookingSale{sibling})
	assert.ErrorIs(t, err, ErrDuplicateBooking,
		"точка сбора сравнивается только когда задана у обеих")
}

func TestCheckConflictsCountsFallbackWhenNoTravelers(t *testing.T) {
	candidate := booking(7, nil)
	sibling := booking(7, nil)

	err := checkConflicts(candidate, []*domain.BookingSale{sibling})
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	other := booking(7, nil)
	other.ExcursionLanguage = "en"
	assert.NoError(t, checkConflicts(candidate, []*domain.BookingSale{other}),
		"другая языковая группа не считается дублем")
}

func TestCheckConflictsTravelerBusyOnOtherExcursion(t *testing.T) {
	candidate := booking(7, []int64{4, 5, 2})
	siblings := []*domain.BookingSale{booking(9, []int64{2, 3})}

	err := checkConflicts(candidate, siblings)
	require.Error(t, err)

	var conflict *TravelerConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{2}, conflict.TravelerIDs)
}

func TestCheckConflictsDisjointSetsAllowed(t *testing.T) {
	candidate := booking(7, []int64{4, 5})
	siblings := []*domain.BookingSale{
		booking(9, []int64{1, 2}),
		booking(11, []int64{3}),
	}

	assert.NoError(t, checkConflicts(candidate, siblings))
}

func TestCheckConflictsSortedOverlap(t *testing.T) {
	candidate := booking(7, []int64{9, 3, 5})
	siblings := []*domain.BookingSale{booking(8, []int64{5, 9, 100})}

	var conflict *TravelerConflictError
	err := checkConflicts(candidate, siblings)
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []int64{5, 9}, conflict.TravelerIDs)
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			CompanyID:         1,
			GuideID:           2,
			ExcursionID:       7,
			Date:              "2026-09-10",
			Adults:            2,
			ExcursionLanguage: "ru",
		}
	}

	assert.NoError(t, validateRequest(valid()))

	r := valid()
	r.CompanyID = 0
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	r = valid()
	r.Adults = 0
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput, "нужен хотя бы один взрослый или ребенок")

	r = valid()
	r.Adults, r.Children = 0, 1
	assert.NoError(t, validateRequest(r))

	r = valid()
	r.ExcursionLanguage = "xx"
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)

	r = valid()
	r.TravelerIDs = []int64{1, -2}
	assert.ErrorIs(t, validateRequest(r), ErrInvalidInput)
}

func TestParseBookingDate(t *testing.T) {
	d, err := parseBookingDate("2026-09-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	_, err = parseBookingDate("10.09.2026")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = parseBookingDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
