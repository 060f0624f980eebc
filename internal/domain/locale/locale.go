package locale

import (
	"fmt"
	"strings"
)

// Language identifies a supported display language.
type Language string

const (
	// Chinese is the default language of the app.
	Chinese Language = "zh"
	// English is the secondary language.
	English Language = "en"
)

// Default is used when a request carries no language preference.
const Default = Chinese

// Languages lists every supported language.
func Languages() []Language {
	return []Language{Chinese, English}
}

// ParseLanguage accepts bare codes and region-tagged variants such as zh-CN or en_US.
func ParseLanguage(raw string) (Language, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Default, nil
	}
	if idx := strings.IndexAny(value, "-_"); idx > 0 {
		value = value[:idx]
	}
	switch Language(value) {
	case Chinese, English:
		return Language(value), nil
	default:
		return "", fmt.Errorf("unsupported language %q", raw)
	}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == Chinese || l == English
}

// OrDefault returns l when valid and Default otherwise.
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return Default
}

// T translates key into lang, returning the key itself when no translation exists.
func T(lang Language, key string) string {
	if table, ok := translations[lang.OrDefault()]; ok {
		if value, ok := table[key]; ok {
			return value
		}
	}
	return key
}
