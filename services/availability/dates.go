package availability

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate    = errors.New("invalid or missing date parameter (YYYY-MM-DD required)")
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// ParseDay parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

// FormatDay renders a calendar date as YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// ParseWeekday matches a weekday name case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, true
		}
	}
	return 0, false
}

// NextDateForWeekday returns the next occurrence of weekday strictly after
// today, between 1 and 7 days ahead. A weekday equal to today's resolves to
// the same day next week.
func NextDateForWeekday(weekday string, today time.Time) (time.Time, error) {
	target, ok := ParseWeekday(weekday)
	if !ok {
		return time.Time{}, ErrInvalidWeekday
	}
	today = today.UTC()
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	daysUntil := (int(target) - int(base.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return base.AddDate(0, 0, daysUntil), nil
}
