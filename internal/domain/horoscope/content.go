package horoscope

import (
	"strings"
	"time"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	"github.com/yanqian/astromaster/pkg/util"
)

// Content is one generated horoscope bundle.
type Content struct {
	Sign           zodiac.Sign     `json:"sign"`
	Period         Period          `json:"period"`
	Date           string          `json:"date"`
	Language       locale.Language `json:"language"`
	Overview       string          `json:"overview"`
	Mood           string          `json:"mood"`
	LuckyNumber    string          `json:"lucky_number"`
	LuckyColor     string          `json:"lucky_color"`
	Compatibility  string          `json:"compatibility"`
	CompatibleSign zodiac.Sign     `json:"compatibility_sign"`
	Work           string          `json:"work"`
	Love           string          `json:"love"`
	Health         string          `json:"health"`
	Relationships  string          `json:"relationships"`
}

// Key identifies a bundle in caches and stores.
type Key struct {
	Sign     zodiac.Sign
	Period   Period
	Date     string
	Language locale.Language
}

// NewKey builds a key for a calendar date.
func NewKey(sign zodiac.Sign, period Period, date time.Time, lang locale.Language) Key {
	return Key{Sign: sign, Period: period, Date: date.Format(util.DateLayout), Language: lang.OrDefault()}
}

// Key returns the identity of c.
func (c Content) Key() Key {
	return Key{Sign: c.Sign, Period: c.Period, Date: c.Date, Language: c.Language}
}

// ID joins the key parts with underscores: aries_daily_2024-01-01_zh.
func (k Key) ID() string {
	return strings.Join([]string{k.Sign.Key(), string(k.Period), k.Date, string(k.Language)}, "_")
}

// CacheKey is the cache entry name of the bundle.
func (k Key) CacheKey() string {
	return "horoscope_" + k.ID()
}

func (k Key) String() string {
	return k.ID()
}
