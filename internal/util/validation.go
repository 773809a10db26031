package util

import (
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// DateLayout is the wire format for meeting dates.
const DateLayout = "2006-01-02"

// ParseMeetingDate parses a yyyy-mm-dd date string.
func ParseMeetingDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsPastDay reports whether d falls on a calendar day before now's day.
// Time-of-day is ignored on both sides.
func IsPastDay(d, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}
