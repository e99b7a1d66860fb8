package numeric

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a float64 that unmarshals from whatever the API sends: a JSON
// number, a quoted numeric string, or null. Malformed values decode to zero
// rather than failing the whole payload, matching the defaulting policy for
// data-shape anomalies.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(sanitize(n))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(ParseString(s))
		return nil
	}

	*a = 0
	return nil
}

// MarshalJSON implements json.Marshaler. Amounts are always emitted as JSON
// numbers with dot decimals, regardless of how they arrived.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.NewFromFloat(sanitize(float64(a))).String()), nil
}

// Float returns the normalized float64 value.
func (a Amount) Float() float64 {
	return sanitize(float64(a))
}
