// Package budget implements the survival calculation: amount validation, the
// cost ledger, the calculator state, unit normalisation and chart data.
package budget

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for input that is not a finite number greater than zero.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a raw field value as a strictly positive decimal.
// Leading and trailing whitespace is ignored; anything else that is not a
// number (including "", "NaN" and "Inf") is rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	// The calculation runs on float64; the value must survive the conversion.
	if f := d.InexactFloat64(); f <= 0 || math.IsInf(f, 0) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidateAmount reports whether raw is an acceptable amount.
func ValidateAmount(raw string) error {
	_, err := ParseAmount(raw)
	return err
}
