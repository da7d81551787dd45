package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoUnit(t *testing.T) {
	assert.Equal(t, UnitDays, AutoUnit(0.5))
	assert.Equal(t, UnitDays, AutoUnit(0.999))
	assert.Equal(t, UnitMonths, AutoUnit(1))
	assert.Equal(t, UnitMonths, AutoUnit(35.9))
	assert.Equal(t, UnitYears, AutoUnit(36))
	assert.Equal(t, UnitYears, AutoUnit(40))
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		months float64
		unit   Unit
		want   string
	}{
		{0.5, UnitDays, "15"},
		{2.5, UnitMonths, "2.5"},
		{3, UnitMonths, "3"},
		{40, UnitYears, "3.3"},
		{12, UnitYears, "1.0"},
		{2.96, UnitMonths, "3.0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatValue(c.months, c.unit), "FormatValue(%v, %v)", c.months, c.unit)
	}
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "0", FormatSummary(0, UnitDays))
	assert.Equal(t, "3.0", FormatSummary(3, UnitMonths))
	assert.Equal(t, "91.3", FormatSummary(3, UnitDays))
}

func TestAvailable_IndependentThresholds(t *testing.T) {
	assert.False(t, Available(UnitDays, 0.5))
	assert.True(t, Available(UnitDays, 1))
	assert.True(t, Available(UnitMonths, 0))
	assert.False(t, Available(UnitYears, 11.9))
	assert.True(t, Available(UnitYears, 12))
	// 20 months auto-selects months but years may be chosen manually.
	assert.Equal(t, UnitMonths, AutoUnit(20))
	assert.True(t, Available(UnitYears, 20))
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("Years")
	require.NoError(t, err)
	assert.Equal(t, UnitYears, u)

	_, err = ParseUnit("weeks")
	assert.Error(t, err)
}
