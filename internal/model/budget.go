package model

import (
	"strconv"

	"github.com/theirongolddev/runway/internal/budget"
	"github.com/theirongolddev/runway/internal/i18n"
)

// BreakdownLine is one valid cost in the summary breakdown.
type BreakdownLine struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// Report is a rendered snapshot of a calculator, shared by the CLI and the
// local API.
type Report struct {
	Locale       string             `json:"locale"`
	Remaining    float64            `json:"remaining"`
	TotalMonthly float64            `json:"total_monthly"`
	HasResult    bool               `json:"has_result"`
	Months       float64            `json:"months"`
	Unit         string             `json:"unit"`
	Value        string             `json:"value,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	Text         string             `json:"text"`
	Insufficient bool               `json:"insufficient"`
	Breakdown    []BreakdownLine    `json:"breakdown"`
	Chart        []budget.ChartItem `json:"chart"`
	Stats        budget.ChartStats  `json:"stats"`
	Errors       map[string]string  `json:"errors,omitempty"`
}

// CostLabel returns the display name of the n-th (1-based) cost.
func CostLabel(loc i18n.Locale) func(n int) string {
	return func(n int) string {
		return loc.T(i18n.KeyCostItem) + " " + strconv.Itoa(n)
	}
}

// ResultText is the localized result sentence for a survival duration shown
// in unit u.
func ResultText(loc i18n.Locale, s budget.Survival, u budget.Unit) string {
	if s.Insufficient() {
		return loc.T(i18n.KeyInsufficientFunds)
	}
	v := budget.FormatValue(s.Months, u)
	switch u {
	case budget.UnitDays:
		return loc.T(i18n.KeyDaysLeft, "days", v)
	case budget.UnitYears:
		return loc.T(i18n.KeyYearsLeft, "years", v)
	}
	if s.Months == float64(int64(s.Months)) {
		return loc.T(i18n.KeyMonthsLeft, "months", v)
	}
	return loc.T(i18n.KeyMonthsLeftDecimal, "months", v)
}

// NewReport snapshots c for display in loc.
func NewReport(c *budget.Calculator, loc i18n.Locale) Report {
	r := Report{
		Locale:       string(loc),
		TotalMonthly: c.TotalMonthly().InexactFloat64(),
		Unit:         c.Unit().String(),
	}
	if v, err := budget.ParseAmount(c.Remaining()); err == nil {
		r.Remaining = v.InexactFloat64()
	}

	label := CostLabel(loc)
	for i, e := range c.ValidCosts() {
		amt, _ := budget.ParseAmount(e.Amount)
		name := e.Name
		if name == "" {
			name = label(i + 1)
		}
		r.Breakdown = append(r.Breakdown, BreakdownLine{
			Name:        name,
			Amount:      amt.InexactFloat64(),
			Description: e.Description,
		})
	}

	r.Chart = budget.ChartData(c.Costs(), label)
	r.Stats = budget.Stats(r.Chart)

	v := c.Validation()
	if !v.Valid() {
		r.Errors = make(map[string]string)
		msg := loc.T(i18n.KeyInputError)
		if v.Remaining != nil {
			r.Errors["remaining"] = msg
		}
		for id := range v.Costs {
			r.Errors["cost_"+strconv.Itoa(int(id))] = msg
		}
	}

	res, ok := c.Result()
	if !ok {
		r.Text = loc.T(i18n.KeyEnterAmountsForResult)
		return r
	}
	r.HasResult = true
	r.Months = res.Months
	r.Insufficient = res.Insufficient()
	r.Value = budget.FormatValue(res.Months, c.Unit())
	r.Summary = budget.FormatSummary(res.Months, c.Unit())
	r.Text = ResultText(loc, res, c.Unit())
	return r
}
