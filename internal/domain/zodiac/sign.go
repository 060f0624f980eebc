package zodiac

import (
	"fmt"
	"strings"

	"github.com/yanqian/astromaster/internal/domain/locale"
)

// Sign is one of the twelve zodiac signs. The zero value is Unknown.
type Sign int

const (
	Unknown Sign = iota
	Aries
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

const signCount = 12

var signKeys = [...]string{"unknown", "aries", "taurus", "gemini", "cancer", "leo", "virgo", "libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces"}

var signNamesZh = [...]string{"未知星座", "白羊座", "金牛座", "双子座", "巨蟹座", "狮子座", "处女座", "天秤座", "天蝎座", "射手座", "摩羯座", "水瓶座", "双鱼座"}

var signNamesEn = [...]string{"Unknown", "Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo", "Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces"}

// Signs returns the twelve signs in canonical order, Aries through Pisces.
func Signs() []Sign {
	out := make([]Sign, 0, signCount)
	for s := Aries; s <= Pisces; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) index() int {
	if !s.Valid() {
		return 0
	}
	return int(s)
}

// Key is the lowercase English identifier used on the wire and in storage keys.
func (s Sign) Key() string {
	return signKeys[s.index()]
}

// Canonical is the identifier that seeds horoscope generation. It is the Chinese
// sign name so generated content matches the historical data set.
func (s Sign) Canonical() string {
	return signNamesZh[s.index()]
}

// EnglishName returns the capitalised English name.
func (s Sign) EnglishName() string {
	return signNamesEn[s.index()]
}

// Name returns the display name in lang.
func (s Sign) Name(lang locale.Language) string {
	if lang.OrDefault() == locale.English {
		return s.EnglishName()
	}
	return s.Canonical()
}

func (s Sign) String() string {
	return s.Key()
}

// MarshalText encodes the sign as its key.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.Key()), nil
}

// UnmarshalText accepts anything ParseSign accepts.
func (s *Sign) UnmarshalText(text []byte) error {
	parsed, err := ParseSign(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSign accepts a key, an English name in any case, or a Chinese name.
func ParseSign(raw string) (Sign, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Unknown, fmt.Errorf("zodiac sign cannot be empty")
	}
	lowered := strings.ToLower(value)
	for s := Aries; s <= Pisces; s++ {
		if lowered == signKeys[s] || value == signNamesZh[s] {
			return s, nil
		}
	}
	return Unknown, fmt.Errorf("unknown zodiac sign %q", raw)
}
