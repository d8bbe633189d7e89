package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Ratio is a quotient that may be positive infinity.
type Ratio struct {
	value    decimal.Decimal
	infinite bool
}

// Infinity is the positive infinite ratio.
var Infinity = Ratio{infinite: true}

// NewRatio wraps a finite value.
func NewRatio(d decimal.Decimal) Ratio { return Ratio{value: d} }

// IsInf reports whether the ratio is positive infinity.
func (r Ratio) IsInf() bool { return r.infinite }

// Decimal returns the finite value, or zero for infinity.
func (r Ratio) Decimal() decimal.Decimal {
	if r.infinite {
		return decimal.Zero
	}
	return r.value
}

// Float64 returns the ratio as a float, math.Inf(1) when infinite.
func (r Ratio) Float64() float64 {
	if r.infinite {
		return math.Inf(1)
	}
	f, _ := r.value.Float64()
	return f
}

// Equal compares two ratios.
func (r Ratio) Equal(o Ratio) bool {
	if r.infinite || o.infinite {
		return r.infinite == o.infinite
	}
	return r.value.Equal(o.value)
}

// String formats the ratio at the precision it was computed with, or "inf".
func (r Ratio) String() string {
	if r.infinite {
		return "inf"
	}
	return r.value.String()
}

// Rounded formats the ratio rounded to places decimals, or "inf".
func (r Ratio) Rounded(places int32) string {
	if r.infinite {
		return "inf"
	}
	return r.value.Round(places).String()
}

// divide returns num/den when den > 0 and fallback otherwise.
func divide(num, den decimal.Decimal, fallback Ratio) Ratio {
	if !den.IsPositive() {
		return fallback
	}
	return NewRatio(num.DivRound(den, 8))
}
