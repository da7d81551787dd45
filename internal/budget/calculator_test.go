package budget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_InsufficientFunds(t *testing.T) {
	cases := []struct{ remaining, cost float64 }{
		{500, 1000},
		{1000, 1000},
		{0, 0},
		{0.01, 5},
	}
	for _, c := range cases {
		assert.Zero(t, Compute(c.remaining, c.cost), "Compute(%v, %v)", c.remaining, c.cost)
	}
}

func TestCompute_Ratio(t *testing.T) {
	cases := []struct{ remaining, cost float64 }{
		{3000, 1000},
		{1000, 3},
		{123456.78, 0.5},
	}
	for _, c := range cases {
		got := Compute(c.remaining, c.cost)
		assert.InDelta(t, c.remaining/c.cost, got, 1e-9)
	}
}

func TestCalculator_NoResultUntilComplete(t *testing.T) {
	c := NewCalculator()
	_, ok := c.Result()
	assert.False(t, ok, "empty form has no result")

	c.SetRemaining("3000")
	_, ok = c.Result()
	assert.False(t, ok, "no cost entries yet")

	c.UpdateCost(1, FieldName, "Rent")
	_, ok = c.Result()
	assert.False(t, ok, "named entry without amount does not count")

	c.UpdateCost(1, FieldAmount, "1000")
	res, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, 3.0, res.Months)
	assert.Equal(t, UnitMonths, c.Unit())
}

func TestCalculator_InsufficientFunds(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("500")
	c.UpdateCost(1, FieldAmount, "1000")

	res, ok := c.Result()
	require.True(t, ok)
	assert.True(t, res.Insufficient())
}

func TestCalculator_InvalidEntryExcluded(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("1000")
	c.UpdateCost(1, FieldAmount, "200")
	bad := c.AddCost()
	c.UpdateCost(bad, FieldAmount, "abc")

	assert.Equal(t, "200", c.TotalMonthly().String())
	res, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, 5.0, res.Months)

	v := c.Validation()
	assert.ErrorIs(t, v.Costs[bad], ErrInvalidAmount)
	assert.NoError(t, v.Remaining)
	assert.False(t, v.Valid())
}

func TestCalculator_InvalidRemainingSuppressesResult(t *testing.T) {
	c := NewCalculator()
	c.UpdateCost(1, FieldAmount, "100")
	c.SetRemaining("-5")

	_, ok := c.Result()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Validation().Remaining, ErrInvalidAmount)
}

func TestCalculator_RemovingLastValidEntryClearsResult(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("1000")
	id := c.AddCost()
	c.UpdateCost(id, FieldAmount, "100")
	_, ok := c.Result()
	require.True(t, ok)

	require.True(t, c.RemoveCost(id))
	_, ok = c.Result()
	assert.False(t, ok)
}

func TestCalculator_AutoUnit(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("500")
	c.UpdateCost(1, FieldAmount, "1000")
	assert.Equal(t, UnitMonths, c.Unit(), "zero result keeps the previous unit")

	c.SetRemaining("1500")
	c.UpdateCost(1, FieldAmount, "1000")
	assert.Equal(t, UnitMonths, c.Unit())

	c.UpdateCost(1, FieldAmount, "10")
	assert.Equal(t, UnitYears, c.Unit())

	c.SetRemaining("100")
	c.UpdateCost(1, FieldAmount, "99.99")
	res, _ := c.Result()
	assert.Greater(t, res.Months, 1.0)
	assert.Equal(t, UnitMonths, c.Unit())
}

func TestCalculator_SelectUnitRespectsAvailability(t *testing.T) {
	c := NewCalculator()
	assert.False(t, c.SelectUnit(UnitDays), "no result yet")

	c.SetRemaining("6000")
	c.UpdateCost(1, FieldAmount, "1000")
	assert.True(t, c.SelectUnit(UnitDays))
	assert.Equal(t, UnitDays, c.Unit())
	assert.False(t, c.SelectUnit(UnitYears), "6 months is below the years threshold")
	assert.Equal(t, UnitDays, c.Unit())

	c.SetRemaining("12000")
	assert.Equal(t, UnitMonths, c.Unit(), "edits re-run automatic selection")
	assert.True(t, c.SelectUnit(UnitYears))
}

func TestCalculator_Reset(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("9000")
	c.AddCost()
	c.UpdateCost(1, FieldAmount, "10")
	c.Reset()

	assert.Equal(t, "", c.Remaining())
	assert.Len(t, c.Costs(), 1)
	assert.True(t, c.Validation().Valid())
	_, ok := c.Result()
	assert.False(t, ok)
	assert.Equal(t, UnitMonths, c.Unit())
}

func TestCalculator_Load(t *testing.T) {
	c := NewCalculator()
	c.Load("3000", []CostEntry{
		{ID: 1, Name: "Rent", Amount: "700"},
		{ID: 2, Name: "Food", Amount: "300"},
	})
	res, ok := c.Result()
	require.True(t, ok)
	assert.InDelta(t, 3.0, res.Months, 1e-12)
	assert.Len(t, c.ValidCosts(), 2)
}

func TestSurvivalIn(t *testing.T) {
	s := Survival{Months: 24}
	assert.Equal(t, 2.0, s.In(UnitYears))
	assert.True(t, math.Abs(s.In(UnitDays)-730.56) < 1e-9)
}

func TestCalculator_OutOfRangeAmountsGiveNoResult(t *testing.T) {
	c := NewCalculator()
	c.SetRemaining("3000")
	id := c.Costs()[0].ID
	c.UpdateCost(id, FieldAmount, "1e-400")
	_, ok := c.Result()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Validation().Costs[id], ErrInvalidAmount)

	c.SetRemaining("1e400")
	c.UpdateCost(id, FieldAmount, "1000")
	_, ok = c.Result()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Validation().Remaining, ErrInvalidAmount)

	// Both finite, but the ratio overflows float64.
	c.SetRemaining("1e300")
	c.UpdateCost(id, FieldAmount, "1e-300")
	_, ok = c.Result()
	assert.False(t, ok)
}
