package zodiac

import (
	"fmt"
	"time"

	"github.com/yanqian/astromaster/pkg/util"
)

type signRange struct {
	sign  Sign
	start string
	end   string
}

// signRanges holds inclusive MM-DD bounds in canonical order. Capricorn wraps the
// year end and is resolved before the scan.
var signRanges = [signCount]signRange{
	{Aries, "03-21", "04-19"},
	{Taurus, "04-20", "05-20"},
	{Gemini, "05-21", "06-21"},
	{Cancer, "06-22", "07-22"},
	{Leo, "07-23", "08-22"},
	{Virgo, "08-23", "09-22"},
	{Libra, "09-23", "10-23"},
	{Scorpio, "10-24", "11-22"},
	{Sagittarius, "11-23", "12-21"},
	{Capricorn, "12-22", "01-19"},
	{Aquarius, "01-20", "02-18"},
	{Pisces, "02-19", "03-20"},
}

// Classify returns the sign for the month and day of date. The year is ignored.
func Classify(date time.Time) Sign {
	return classifyMonthDay(fmt.Sprintf("%02d-%02d", int(date.Month()), date.Day()))
}

// ClassifyString parses an ISO YYYY-MM-DD date and classifies it.
func ClassifyString(raw string) (Sign, error) {
	date, err := util.ParseDate(raw)
	if err != nil {
		return Unknown, err
	}
	return Classify(date), nil
}

func classifyMonthDay(md string) Sign {
	if md >= "12-22" || md <= "01-19" {
		return Capricorn
	}
	for _, r := range signRanges {
		if r.sign == Capricorn {
			continue
		}
		if md >= r.start && md <= r.end {
			return r.sign
		}
	}
	return Unknown
}

// Bounds returns the inclusive start and end month-day of s.
func Bounds(s Sign) (start, end string, ok bool) {
	if !s.Valid() {
		return "", "", false
	}
	r := signRanges[s-1]
	return r.start, r.end, true
}
