package horoscope

import (
	"time"
	"unicode/utf16"

	"github.com/yanqian/astromaster/internal/domain/zodiac"
	"github.com/yanqian/astromaster/pkg/util"
)

// Hash folds s into 32 bits with h = h*31 + c over its UTF-16 code units, using
// signed wraparound arithmetic, and returns the absolute value. Stored bundles
// were produced with this exact function, so it must not change.
func Hash(s string) uint32 {
	h := rawHash(s)
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

func rawHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

// Seed derives the table selector for a sign, period and calendar date.
func Seed(sign zodiac.Sign, period Period, date time.Time) uint32 {
	return Hash(sign.Canonical() + string(period) + date.Format(util.DateLayout))
}
