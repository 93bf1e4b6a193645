package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.57, RoundMoney(10.565))
	assert.Equal(t, 10.56, RoundMoney(10.564))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 33.33, RoundMoney(100.0/3.0))
	assert.Equal(t, 75.0, RoundMoney(100*0.75))
}

func TestParseTravelersCSV(t *testing.T) {
	assert.Equal(t, []int64{12, 15, 33}, ParseTravelersCSV("12,15,33"))
	assert.Equal(t, []int64{12, 33}, ParseTravelersCSV(" 12 , abc, 33 ,"))
	assert.Nil(t, ParseTravelersCSV(""))
	assert.Nil(t, ParseTravelersCSV("   "))
	assert.Empty(t, ParseTravelersCSV("-1,0"))
}

func TestSetTravelerIDsRoundTrip(t *testing.T) {
	b := &BookingSale{}
	b.SetTravelerIDs([]int64{5, 2, 9})
	assert.Equal(t, "5,2,9", b.TravelersCSV)
	assert.Equal(t, []int64{5, 2, 9}, b.TravelerIDs())

	b.SetTravelerIDs(nil)
	assert.Equal(t, "", b.TravelersCSV)
	assert.Nil(t, b.TravelerIDs())
}

func TestTravelerIDSet(t *testing.T) {
	a := NewTravelerIDSet([]int64{1, 2, 3})
	b := NewTravelerIDSet([]int64{3, 2, 1})
	c := NewTravelerIDSet([]int64{2, 3, 4})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewTravelerIDSet([]int64{1, 2})))

	assert.Equal(t, []int64{2, 3}, a.Intersect(c))
	assert.Empty(t, a.Intersect(NewTravelerIDSet([]int64{7, 8})))
}

func TestStatusPredicates(t *testing.T) {
	cases := []struct {
		status    BookingStatus
		busy      bool
		editable  bool
		cancelable bool
	}{
		{StatusDraft, true, true, false},
		{StatusPending, true, false, true},
		{StatusHold, false, false, true},
		{StatusPaid, false, false, true},
		{StatusExpired, false, false, true},
		{StatusCancelled, false, false, false},
	}
	for _, tc := range cases {
		b := &BookingSale{Status: tc.status}
		assert.Equal(t, tc.busy, b.IsBusy(), "IsBusy %s", tc.status)
		assert.Equal(t, tc.editable, b.CanBeEdited(), "CanBeEdited %s", tc.status)
		assert.Equal(t, tc.editable, b.CanBeDeleted(), "CanBeDeleted %s", tc.status)
		assert.Equal(t, tc.editable, b.CanBeSent(), "CanBeSent %s", tc.status)
		assert.Equal(t, tc.cancelable, b.CanBeCancelled(), "CanBeCancelled %s", tc.status)
	}
	assert.True(t, (&BookingSale{Status: StatusCancelled}).IsCancelled())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusHold))
	assert.False(t, IsValidStatus(BookingStatus("SHIPPED")))
	assert.False(t, IsValidStatus(BookingStatus("")))
}

func TestIsValidPriceSource(t *testing.T) {
	assert.True(t, IsValidPriceSource(PriceSourceManual))
	assert.False(t, IsValidPriceSource(PriceSource("CSI")))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(BookingCodeLength)
	assert.NoError(t, err)
	assert.Len(t, code, BookingCodeLength)
	for _, r := range code {
		assert.Contains(t, codeAlphabet, string(r))
	}

	other, err := GenerateCode(BookingCodeLength)
	assert.NoError(t, err)
	assert.NotEqual(t, code, other)
}
