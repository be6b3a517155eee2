package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth is returned for anything that is not YYYY-MM (or YYYY-M)
// with a month in 1..12.
var ErrInvalidMonth = errors.New("invalid month")

// MonthRange is the half-open interval [Start, End) covering one calendar month.
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t < End.
func (r MonthRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ParseMonth parses "YYYY-MM" or "YYYY-M", tolerating surrounding quotes and
// spaces. An empty value yields nil, meaning no range.
func ParseMonth(s string) (*MonthRange, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return nil, nil
	}
	year, month, ok := strings.Cut(s, "-")
	if !ok || len(year) != 4 || len(month) == 0 || len(month) > 2 || !digits(year) || !digits(month) {
		return nil, ErrInvalidMonth
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return nil, ErrInvalidMonth
	}
	start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return &MonthRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
