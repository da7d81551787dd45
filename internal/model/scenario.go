package model

import (
	"time"

	"github.com/theirongolddev/runway/internal/budget"
)

// Scenario is a named, saved copy of the calculator inputs.
type Scenario struct {
	Name      string             `json:"name"`
	Remaining string             `json:"remaining"`
	Costs     []budget.CostEntry `json:"costs"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ScenarioFrom captures c's current inputs under name.
func ScenarioFrom(name string, c *budget.Calculator) Scenario {
	return Scenario{
		Name:      name,
		Remaining: c.Remaining(),
		Costs:     c.Costs(),
	}
}

// Apply loads s into c, replacing the current form.
func (s Scenario) Apply(c *budget.Calculator) {
	c.Load(s.Remaining, s.Costs)
}

// TotalMonthly sums the scenario's valid cost amounts.
func (s Scenario) TotalMonthly() float64 {
	return budget.LedgerFrom(s.Costs).Total().InexactFloat64()
}
