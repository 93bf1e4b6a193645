package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"иванов", "Иванов"},
		{"  ПЕТРОВ  ", "Петров"},
		{"de la  cruz", "De La Cruz"},
		{"ANNA-MARIA", "Anna-maria"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "in=%q", tc.in)
	}
}

func TestTravelerNormalize(t *testing.T) {
	tr := &Traveler{FirstName: "иВАН", LastName: "петров", MiddleName: "СЕРГЕЕВИЧ"}
	tr.Normalize()
	assert.Equal(t, "Иван", tr.FirstName)
	assert.Equal(t, "Петров", tr.LastName)
	assert.Equal(t, "Сергеевич", tr.MiddleName)
}

func TestNetPriceInRange(t *testing.T) {
	from := mustDay(t, "2026-09-01")
	to := mustDay(t, "2026-09-30")
	p := &ExcursionNetPrice{ValidFrom: &from, ValidTo: &to}

	assert.True(t, p.InRange(mustDay(t, "2026-09-01")), "нижняя граница включительно")
	assert.True(t, p.InRange(mustDay(t, "2026-09-30")), "верхняя граница включительно")
	assert.False(t, p.InRange(mustDay(t, "2026-08-31")))
	assert.False(t, p.InRange(mustDay(t, "2026-10-01")))

	open := &ExcursionNetPrice{}
	assert.True(t, open.InRange(mustDay(t, "2020-01-01")))
}

func TestEffectiveChildNet(t *testing.T) {
	adult := 100.0
	explicit := 60.0

	p := &ExcursionNetPrice{NetPerAdult: &adult, NetPerChild: &explicit}
	assert.Equal(t, 60.0, *p.EffectiveChildNet(), "явная детская цена выигрывает")

	p = &ExcursionNetPrice{NetPerAdult: &adult, ChildDiscountPct: 30}
	assert.Equal(t, 70.0, *p.EffectiveChildNet())

	p = &ExcursionNetPrice{NetPerAdult: &adult}
	assert.Equal(t, 75.0, *p.EffectiveChildNet(), "скидка по умолчанию 25%")

	p = &ExcursionNetPrice{}
	assert.Nil(t, p.EffectiveChildNet())
}
