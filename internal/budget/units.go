package budget

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DaysPerMonth is the average number of days in a Gregorian month.
const DaysPerMonth = 30.44

// Unit is the display unit of a survival duration.
type Unit int

const (
	UnitMonths Unit = iota
	UnitDays
	UnitYears
)

// Units lists the units in display order.
var Units = []Unit{UnitDays, UnitMonths, UnitYears}

// Thresholds for automatic unit selection, in months.
const (
	autoDaysBelow      = 1.0
	autoYearsAtOrAbove = 36.0
)

// Thresholds below which a manual unit choice is unavailable, in months.
const (
	daysAvailableFrom  = 1.0
	yearsAvailableFrom = 12.0
)

func (u Unit) String() string {
	switch u {
	case UnitDays:
		return "days"
	case UnitYears:
		return "years"
	default:
		return "months"
	}
}

// ParseUnit parses "days", "months" or "years" (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "d":
		return UnitDays, nil
	case "months", "month", "m":
		return UnitMonths, nil
	case "years", "year", "y":
		return UnitYears, nil
	}
	return UnitMonths, fmt.Errorf("unknown unit %q", s)
}

// AutoUnit picks the unit that reads most naturally for a duration of m months.
func AutoUnit(m float64) Unit {
	switch {
	case m < autoDaysBelow:
		return UnitDays
	case m < autoYearsAtOrAbove:
		return UnitMonths
	default:
		return UnitYears
	}
}

// Available reports whether a user may switch to unit u for a duration of m
// months. These thresholds intentionally differ from AutoUnit.
func Available(u Unit, m float64) bool {
	switch u {
	case UnitDays:
		return m >= daysAvailableFrom
	case UnitYears:
		return m >= yearsAvailableFrom
	default:
		return true
	}
}

// Convert expresses m months in unit u.
func Convert(m float64, u Unit) float64 {
	switch u {
	case UnitDays:
		return m * DaysPerMonth
	case UnitYears:
		return m / 12
	default:
		return m
	}
}

// FormatValue renders m months in unit u for the result sentence: whole days,
// whole or one-decimal months, one-decimal years.
func FormatValue(m float64, u Unit) string {
	v := Convert(m, u)
	switch u {
	case UnitDays:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	case UnitYears:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		whole := math.Floor(v)
		if v-whole == 0 {
			return strconv.FormatFloat(whole, 'f', 0, 64)
		}
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}

// FormatSummary renders m months in unit u for the summary table: "0" for a
// zero duration, otherwise one decimal.
func FormatSummary(m float64, u Unit) string {
	if m == 0 {
		return "0"
	}
	return strconv.FormatFloat(Convert(m, u), 'f', 1, 64)
}
