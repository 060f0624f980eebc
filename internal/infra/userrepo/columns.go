package userrepo

import (
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

func signColumn(s zodiac.Sign) string {
	if !s.Valid() {
		return ""
	}
	return s.Key()
}

func parseSignColumn(raw string) zodiac.Sign {
	if raw == "" {
		return zodiac.Unknown
	}
	sign, err := zodiac.ParseSign(raw)
	if err != nil {
		return zodiac.Unknown
	}
	return sign
}

func languageColumn(lang locale.Language) string {
	return string(lang.OrDefault())
}
