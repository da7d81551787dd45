package budget

import (
	"math"

	"github.com/shopspring/decimal"
)

// Validation is the per-field validation state of a calculator.
type Validation struct {
	Remaining error
	Costs     map[CostID]error
}

// Valid reports whether no field currently has an error.
func (v Validation) Valid() bool {
	return v.Remaining == nil && len(v.Costs) == 0
}

// Calculator holds the whole form state: the remaining amount, the cost
// ledger, validation results, the derived survival result and the selected
// display unit. Every mutation recomputes the derived state before returning.
type Calculator struct {
	remaining    string
	remainingErr error
	ledger       *Ledger

	result   Survival
	hasValue bool
	unit     Unit
}

// NewCalculator returns an empty calculator showing months.
func NewCalculator() *Calculator {
	return &Calculator{ledger: NewLedger(), unit: UnitMonths}
}

// Load replaces the form with the given remaining amount and cost entries.
// The remaining amount is validated only when non-empty.
func (c *Calculator) Load(remaining string, costs []CostEntry) {
	c.remaining = remaining
	c.remainingErr = nil
	if remaining != "" {
		c.remainingErr = ValidateAmount(remaining)
	}
	c.ledger = LedgerFrom(costs)
	c.unit = UnitMonths
	c.recompute()
}

// SetRemaining sets and validates the remaining amount.
func (c *Calculator) SetRemaining(v string) {
	c.remaining = v
	c.remainingErr = ValidateAmount(v)
	c.recompute()
}

// Remaining returns the raw remaining amount.
func (c *Calculator) Remaining() string { return c.remaining }

// AddCost appends an empty cost entry.
func (c *Calculator) AddCost() CostID {
	id := c.ledger.Add()
	c.recompute()
	return id
}

// UpdateCost edits one field of a cost entry. Unknown ids are ignored.
func (c *Calculator) UpdateCost(id CostID, field Field, value string) bool {
	ok := c.ledger.Update(id, field, value)
	if ok {
		c.recompute()
	}
	return ok
}

// RemoveCost deletes a cost entry unless it is the last one.
func (c *Calculator) RemoveCost(id CostID) bool {
	ok := c.ledger.Remove(id)
	if ok {
		c.recompute()
	}
	return ok
}

// Costs returns the cost entries in order.
func (c *Calculator) Costs() []CostEntry { return c.ledger.Entries() }

// ValidCosts returns the entries that contribute to the monthly total.
func (c *Calculator) ValidCosts() []CostEntry { return c.ledger.Valid() }

// Validation returns the current validation state.
func (c *Calculator) Validation() Validation {
	return Validation{Remaining: c.remainingErr, Costs: c.ledger.Errors()}
}

// TotalMonthly returns the sum of all valid cost amounts.
func (c *Calculator) TotalMonthly() decimal.Decimal { return c.ledger.Total() }

// Result returns the survival duration, or false while the inputs are
// incomplete: remaining empty or invalid, or no valid cost entries.
func (c *Calculator) Result() (Survival, bool) {
	return c.result, c.hasValue
}

// Unit returns the selected display unit.
func (c *Calculator) Unit() Unit { return c.unit }

// SelectUnit switches the display unit. It is refused when there is no
// result or the unit is unavailable for the current duration.
func (c *Calculator) SelectUnit(u Unit) bool {
	if !c.hasValue || !Available(u, c.result.Months) {
		return false
	}
	c.unit = u
	return true
}

// UnitAvailable reports whether SelectUnit(u) would succeed.
func (c *Calculator) UnitAvailable(u Unit) bool {
	return c.hasValue && Available(u, c.result.Months)
}

// Reset clears the form back to its initial state.
func (c *Calculator) Reset() {
	c.remaining = ""
	c.remainingErr = nil
	c.ledger.Reset()
	c.result = Survival{}
	c.hasValue = false
	c.unit = UnitMonths
}

func (c *Calculator) recompute() {
	valid := c.ledger.Valid()
	if c.remaining == "" || c.remainingErr != nil || len(valid) == 0 {
		c.result = Survival{}
		c.hasValue = false
		return
	}
	remaining, err := ParseAmount(c.remaining)
	if err != nil {
		c.result = Survival{}
		c.hasValue = false
		return
	}
	months := Compute(remaining.InexactFloat64(), c.ledger.Total().InexactFloat64())
	if math.IsInf(months, 0) || math.IsNaN(months) {
		c.result = Survival{}
		c.hasValue = false
		return
	}
	c.result = Survival{Months: months}
	c.hasValue = true
	if months > 0 {
		c.unit = AutoUnit(months)
	}
}
