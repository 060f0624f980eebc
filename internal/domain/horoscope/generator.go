package horoscope

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	"github.com/yanqian/astromaster/pkg/util"
)

const (
	adviceCount = 10
	labelCount  = 15
)

// phrasebook holds the templates of one language. Every language must keep the
// same order so that one seed selects the same entry everywhere. Templates use
// {sign}, {time} and {Time} (capitalised time prefix).
type phrasebook struct {
	prefixes      map[Period]string
	overviews     [adviceCount]string
	moods         [labelCount]string
	colors        [labelCount]string
	work          [adviceCount]string
	love          [adviceCount]string
	health        [adviceCount]string
	relationships [adviceCount]string
}

func phrasebookFor(lang locale.Language) *phrasebook {
	if lang == locale.English {
		return &phrasesEn
	}
	return &phrasesZh
}

func (b *phrasebook) prefix(p Period) string {
	if value, ok := b.prefixes[p]; ok {
		return value
	}
	return b.prefixes[Daily]
}

// Generate builds the horoscope bundle for sign, period and the calendar date of
// date. It is pure: the same inputs always produce the same bundle. Unrecognised
// periods render with the "today" prefix and unknown signs still get a bundle.
func Generate(sign zodiac.Sign, period Period, date time.Time, lang locale.Language) Content {
	lang = lang.OrDefault()
	book := phrasebookFor(lang)
	// One seed indexes every table. Stored bundles depend on it; per-field
	// sub-seeds would spread the picks but change every existing bundle.
	seed := Seed(sign, period, date)

	prefix := book.prefix(period)
	fill := strings.NewReplacer(
		"{sign}", sign.Name(lang),
		"{time}", prefix,
		"{Time}", capitalize(prefix),
	)
	compatible := compatibleSign(sign, seed)

	return Content{
		Sign:           sign,
		Period:         period,
		Date:           date.Format(util.DateLayout),
		Language:       lang,
		Overview:       fill.Replace(pick(book.overviews[:], seed)),
		Mood:           pick(book.moods[:], seed),
		LuckyNumber:    strconv.FormatUint(uint64(seed%99+1), 10),
		LuckyColor:     pick(book.colors[:], seed),
		Compatibility:  compatible.Name(lang),
		CompatibleSign: compatible,
		Work:           fill.Replace(pick(book.work[:], seed)),
		Love:           fill.Replace(pick(book.love[:], seed)),
		Health:         fill.Replace(pick(book.health[:], seed)),
		Relationships:  fill.Replace(pick(book.relationships[:], seed)),
	}
}

func pick(table []string, seed uint32) string {
	return table[seed%uint32(len(table))]
}

// compatibleSign picks from the other eleven signs, or from all twelve when
// sign is not a real sign.
func compatibleSign(sign zodiac.Sign, seed uint32) zodiac.Sign {
	candidates := make([]zodiac.Sign, 0, 12)
	for _, s := range zodiac.Signs() {
		if s != sign {
			candidates = append(candidates, s)
		}
	}
	return candidates[seed%uint32(len(candidates))]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
