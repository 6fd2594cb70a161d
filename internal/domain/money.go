package domain

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds a GHS value to cent precision. Every currency field on a
// record passes through here exactly once, at assignment, so derived values
// like balance_after stay cent-exact.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
