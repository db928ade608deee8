// Package core holds the transaction domain: records, money, month tokens
// and the query/aggregation vocabulary shared by every store backend.
package core

import (
	"fmt"
	"math"
	"strconv"
)

// Money is a fixed-point amount in cents. Prices arrive from the upstream
// dataset as JSON floats and are rounded half-up to cents on ingest; all
// arithmetic and comparisons happen on the integer representation.
type Money struct {
	Cents int64
}

// MoneyFromFloat converts a decimal amount to cents with half-up rounding.
func MoneyFromFloat(f float64) Money {
	return Money{Cents: int64(math.Round(f * 100))}
}

// Float returns the decimal value for JSON responses.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Text is the canonical textual rendering of a price, always two decimals.
// Free-text search matches against this form; numeric fields participate in
// search only through this explicit coercion.
func (m Money) Text() string {
	neg := m.Cents < 0
	cents := m.Cents
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON emits the price as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', -1, 64)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return ErrInvalidPrice
	}
	*m = MoneyFromFloat(f)
	return nil
}
