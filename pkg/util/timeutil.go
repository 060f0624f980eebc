package util

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date layout used on the wire and in storage keys.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must use YYYY-MM-DD: %w", err)
	}
	return parsed, nil
}

// FormatDate renders the calendar date of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CalendarDay truncates t to the calendar day it falls on in loc, expressed as midnight UTC.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
