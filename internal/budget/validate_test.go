package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount_Rejects(t *testing.T) {
	for _, raw := range []string{"0", "-5", "abc", "", "   ", "0.00", "NaN", "Inf", "12abc", "1e-400", "1e400"} {
		err := ValidateAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, "ValidateAmount(%q)", raw)
	}
}

func TestValidateAmount_Accepts(t *testing.T) {
	for _, raw := range []string{"1", "0.01", "1000000", " 42 ", "1e3"} {
		assert.NoError(t, ValidateAmount(raw), "ValidateAmount(%q)", raw)
	}
}

func TestParseAmount_Value(t *testing.T) {
	d, err := ParseAmount("1234.50")
	require.NoError(t, err)
	assert.Equal(t, "1234.5", d.String())
}
