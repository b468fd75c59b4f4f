// Package percent renders ratios as fixed-point percentage strings.
package percent

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Format returns part/whole*100 rounded half away from zero to the given
// number of decimal places. A zero or negative whole yields "0".
func Format(part, whole int, places int32) string {
	if whole <= 0 {
		return "0"
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(whole)), places).
		StringFixed(places)
}
