package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatISO renders a time in RFC 3339 UTC, the interchange format the
// booking endpoints expect for startDate.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDisplayDate formats time the way the booking card shows it, e.g. "Mon Sep 1 2025".
func FormatDisplayDate(t time.Time) string {
	return t.In(time.Local).Format("Mon Jan 2 2006")
}
