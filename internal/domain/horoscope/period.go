package horoscope

import (
	"fmt"
	"strings"
)

// Period is the time horizon a horoscope covers.
type Period string

const (
	Daily    Period = "daily"
	Tomorrow Period = "tomorrow"
	Weekly   Period = "weekly"
	Monthly  Period = "monthly"
	Yearly   Period = "yearly"
)

// Periods lists every supported period in display order.
func Periods() []Period {
	return []Period{Daily, Tomorrow, Weekly, Monthly, Yearly}
}

// Valid reports whether p is a supported period.
func (p Period) Valid() bool {
	switch p {
	case Daily, Tomorrow, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// ParsePeriod accepts the period identifiers in any case.
func ParsePeriod(raw string) (Period, error) {
	value := Period(strings.ToLower(strings.TrimSpace(raw)))
	if !value.Valid() {
		return "", fmt.Errorf("unsupported period %q", raw)
	}
	return value, nil
}

// LabelKey is the translation key of the period's display label.
func (p Period) LabelKey() string {
	if !p.Valid() {
		return "period." + string(Daily)
	}
	return "period." + string(p)
}
