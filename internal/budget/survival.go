package budget

// Compute returns how many months remaining lasts at totalMonthly per month.
// It is 0 whenever the monthly total meets or exceeds the remaining funds,
// which also covers the degenerate 0/0 case.
func Compute(remaining, totalMonthly float64) float64 {
	if remaining <= totalMonthly {
		return 0
	}
	return remaining / totalMonthly
}

// Survival is a computed survival duration.
type Survival struct {
	Months float64
}

// Insufficient reports whether the funds do not cover a single month's costs.
func (s Survival) Insufficient() bool {
	return s.Months == 0
}

// In converts the duration to the given unit.
func (s Survival) In(u Unit) float64 {
	return Convert(s.Months, u)
}
