// Package numeric normalizes monetary values arriving from the budgeting API.
// The backend serializes decimals inconsistently (sometimes JSON numbers,
// sometimes strings, sometimes null), and user-facing inputs accept a comma
// as the decimal separator. Every amount must pass through this package
// before any arithmetic.
package numeric

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse coerces an arbitrary decoded JSON value into a finite float64.
// Numbers pass through, numeric strings (comma or dot decimal separator)
// are parsed, and everything else (nil, empty string, garbage, NaN, Inf)
// collapses to zero. Parse never fails.
func Parse(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return sanitize(v)
	case float32:
		return sanitize(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return ParseString(v)
	default:
		return 0
	}
}

// ParseString parses a numeric string, tolerating a comma decimal separator
// and surrounding whitespace. Unparseable input yields zero.
func ParseString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return sanitize(d.InexactFloat64())
}

// ParseInput is the strict variant used for wizard form fields: it reports
// whether the text was a valid number at all, so the caller can reject the
// keystroke while still keeping the stored value numeric.
func ParseInput(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return sanitize(d.InexactFloat64()), true
}

// FormatComma renders an amount with a comma decimal separator, the format
// used by the CSV export. Trailing zeros are not padded; 12.5 renders as
// "12,5" and 12 as "12".
func FormatComma(v float64) string {
	s := decimal.NewFromFloat(sanitize(v)).String()
	return strings.Replace(s, ".", ",", 1)
}

// Round2 rounds to two decimal places, the precision every derived total is
// reported at.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(sanitize(v)).Round(2).InexactFloat64()
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
