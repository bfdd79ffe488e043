package helpers

import (
	"strings"
	"time"
)

// Date layouts used by roster exports and by SQL date literals.
const (
	DayMonthYearLayout = "2/1/2006"
	SQLDateLayout      = "2006-01-02"
)

// ParseDayMonthYear parses a DD/MM/YYYY date. Day and month may be one or two
// digits; the year must be four. Impossible calendar dates such as 31/02 are
// rejected.
func ParseDayMonthYear(s string) (time.Time, error) {
	return time.Parse(DayMonthYearLayout, strings.TrimSpace(s))
}

// FormatSQLDate renders t as YYYY-MM-DD.
func FormatSQLDate(t time.Time) string {
	return t.Format(SQLDateLayout)
}

// ParseSQLDate parses a YYYY-MM-DD date.
func ParseSQLDate(s string) (time.Time, error) {
	return time.Parse(SQLDateLayout, strings.TrimSpace(s))
}
