package horoscope

import (
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

// JobPrewarm is the queue job that loads a sign's daily horoscope ahead of a visit.
const JobPrewarm = "horoscope.prewarm"

// Request carries raw lookup parameters. Empty Date means the current calendar
// day, or the next one for the tomorrow period. Empty Language uses the
// configured default.
type Request struct {
	Sign     string
	Period   string
	Date     string
	Language string
}

// Response wraps a bundle with the layer that served it.
type Response struct {
	Horoscope Content `json:"horoscope"`
	Source    string  `json:"source"`
}

// ForecastRequest asks for every period of one sign. Date is the base day; the
// tomorrow bundle is taken from the following day.
type ForecastRequest struct {
	Sign     string
	Date     string
	Language string
}

// ForecastResponse lists one bundle per period in display order.
type ForecastResponse struct {
	Sign       zodiac.Sign     `json:"sign"`
	Date       string          `json:"date"`
	Language   locale.Language `json:"language"`
	Horoscopes []Response      `json:"horoscopes"`
}
