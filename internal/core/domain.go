package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is the day a transaction was sold. It wraps time.Time so the
	// month token can be extracted from a real calendar value instead of
	// substring-matching a serialized form.
	Date struct {
		time.Time
	}

	// Transaction is the sole persisted entity: one sale record from the
	// upstream dataset. The ID is assigned by the store on insert.
	Transaction struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       Money   `json:"price"`
		Category    *string `json:"category"`
		DateOfSale  Date    `json:"dateOfSale"`
		IsSold      bool    `json:"isSold"`
	}
)

var (
	ErrEmptyTitle   = errors.New("empty title")
	ErrInvalidPrice = errors.New("invalid price")
	ErrInvalidDate  = errors.New("invalid date of sale")
	ErrInvalidMonth = errors.New("invalid month")
	ErrSeedFetch    = errors.New("seed fetch failed")
)

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the two dateOfSale forms seen in the upstream dataset:
// a bare date ("2021-11-27") or a full RFC3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date{Time: t}, nil
	}
	return Date{}, ErrInvalidDate
}

// MonthToken returns the calendar month of the sale, the value every
// month-scoped filter compares against.
func (d Date) MonthToken() MonthToken {
	if d.IsZero() {
		return 0
	}
	return MonthToken(d.Time.Month())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON serializes the date-only form used on the wire.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.Price.Cents < 0 {
		return ErrInvalidPrice
	}
	if err := t.DateOfSale.Validate(); err != nil {
		return err
	}
	return nil
}
