// Package types provides monetary rounding utilities.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to 2 decimal places using decimal
// arithmetic (half away from zero). Plain float truncation accumulates
// drift across many line items; routing every displayed or persisted
// amount through here keeps totals stable.
// Non-finite input is coerced to 0.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// RoundTo rounds to an arbitrary number of decimal places.
func RoundTo(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}
