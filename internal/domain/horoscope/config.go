package horoscope

import (
	"time"

	"github.com/yanqian/astromaster/internal/domain/locale"
)

// Config holds runtime knobs for the horoscope service.
type Config struct {
	CacheTTL        time.Duration
	DefaultLanguage locale.Language
	// Location decides which calendar day "today" is.
	Location *time.Location
}
