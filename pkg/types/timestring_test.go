package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimeString(t *testing.T) {
	cases := []struct {
		raw  string
		want TimeString
	}{
		{"09:05", "09:05"},
		{"9:5", "09:05"},
		{"09.05", "09:05"},
		{"09:05:00", "09:05"},
		{"  14:30 ", "14:30"},
		{"24:00", ""},
		{"12:60", ""},
		{"morning", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTimeString(tc.raw), "raw=%q", tc.raw)
	}
}

func TestTimeStringValidate(t *testing.T) {
	ts, err := NewTimeStringFromString("08:45")
	assert.NoError(t, err)
	assert.Equal(t, TimeString("08:45"), ts)

	_, err = NewTimeStringFromString("8:45pm")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
