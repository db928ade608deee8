package core

import (
	"strings"
	"time"
)

// MonthToken identifies a calendar month (1-12) independent of year. The
// zero value means "no valid month": a filter built from it matches no
// records, which is how missing or unknown month parameters degrade.
type MonthToken int

// MonthFromName parses an English month name, case-insensitively.
// Unknown names yield the zero token rather than an error.
func MonthFromName(name string) MonthToken {
	name = strings.ToLower(strings.TrimSpace(name))
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == name {
			return MonthToken(m)
		}
	}
	return 0
}

// Valid reports whether the token names a real month.
func (m MonthToken) Valid() bool {
	return m >= 1 && m <= 12
}

func (m MonthToken) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return time.Month(m).String()
}
