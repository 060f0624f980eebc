package horoscope

import (
	"fmt"
	"strings"

	"github.com/yanqian/astromaster/internal/domain/locale"
)

// ShareText renders c as the plain-text message users share from the app.
func ShareText(c Content) string {
	lang := c.Language.OrDefault()
	t := func(key string) string { return locale.T(lang, key) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n\n", c.Sign.Name(lang), t(c.Period.LabelKey()), c.Date)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.overview"), c.Overview)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.mood"), c.Mood)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.lucky_number"), c.LuckyNumber)
	fmt.Fprintf(&b, "%s: %s\n\n", t("horoscope.lucky_color"), c.LuckyColor)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.work"), c.Work)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.love"), c.Love)
	fmt.Fprintf(&b, "%s: %s\n", t("horoscope.health"), c.Health)
	if c.Relationships != "" {
		fmt.Fprintf(&b, "%s: %s\n\n", t("horoscope.relationships"), c.Relationships)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "- %s", t("app.name"))
	return b.String()
}
