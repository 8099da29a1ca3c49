// Package percent computes and renders the two-decimal percentages reported by
// the analytics endpoints.
//
// Values are rounded half-to-even at two decimal places and rendered with
// trailing zeros trimmed, keeping at least one fractional digit ("60.0",
// "33.33", "12.5").
package percent

import (
	"strings"

	"github.com/shopspring/decimal"
)

const places = 2

// divPrecision keeps enough digits that rounding to two places never sees a
// truncated midpoint.
const divPrecision = 20

var hundred = decimal.NewFromInt(100)

// Of returns part*100/whole rounded to two places. ok is false when whole is zero.
func Of(part, whole decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if whole.IsZero() {
		return decimal.Zero, false
	}
	return part.Mul(hundred).DivRound(whole, divPrecision).RoundBank(places), true
}

// OfInt is Of for integer counts.
func OfInt(part, whole int64) (decimal.Decimal, bool) {
	return Of(decimal.NewFromInt(part), decimal.NewFromInt(whole))
}

// Format renders a rounded percentage, e.g. 60 -> "60.0", 33.333 -> "33.33".
func Format(d decimal.Decimal) string {
	s := d.RoundBank(places).StringFixed(places)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if s == "-0.0" {
		s = "0.0"
	}
	return s
}
