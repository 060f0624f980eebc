package horoscope

import (
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

func day(raw string) time.Time {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestHash(t *testing.T) {
	require.Equal(t, uint32(0), Hash(""))
	require.Equal(t, uint32(96354), Hash("abc"))
	require.Equal(t, uint32(1794106052), Hash("hello world"))
	require.Equal(t, int32(-1396607425), rawHash("白羊座daily2024-01-01"))
	require.Equal(t, uint32(1396607425), Hash("白羊座daily2024-01-01"))
}

func TestSeed_Fixtures(t *testing.T) {
	tests := []struct {
		sign   zodiac.Sign
		period Period
		date   string
		want   uint32
	}{
		{zodiac.Aries, Daily, "2024-01-01", 1396607425},
		{zodiac.Aries, Daily, "2024-01-02", 1396607424},
		{zodiac.Capricorn, Yearly, "2025-06-15", 848666250},
		{zodiac.Leo, Weekly, "2024-03-10", 245738206},
		{zodiac.Pisces, Tomorrow, "2024-12-31", 1820279289},
		{zodiac.Capricorn, Monthly, "2024-02-29", 1638416943},
		{zodiac.Aries, Period(""), "2024-01-01", 403409242},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Seed(tc.sign, tc.period, day(tc.date)), "%s %s %s", tc.sign, tc.period, tc.date)
	}
}

func TestSeed_RawDailyPerSign(t *testing.T) {
	want := map[zodiac.Sign]int32{
		zodiac.Taurus:      537075260,
		zodiac.Gemini:      975671446,
		zodiac.Cancer:      -549634909,
		zodiac.Leo:         -1484364,
		zodiac.Virgo:       -956761471,
		zodiac.Libra:       113887085,
		zodiac.Scorpio:     224772311,
		zodiac.Sagittarius: -622677927,
		zodiac.Capricorn:   -1207782408,
		zodiac.Aquarius:    -1485675820,
		zodiac.Pisces:      951581122,
	}
	for sign, raw := range want {
		require.Equal(t, raw, rawHash(sign.Canonical()+"daily2024-01-01"), sign.String())
		abs := raw
		if abs < 0 {
			abs = -abs
		}
		require.Equal(t, uint32(abs), Seed(sign, Daily, day("2024-01-01")))
	}
}

func TestGenerate_AriesDailyChinese(t *testing.T) {
	want := Content{
		Sign:           zodiac.Aries,
		Period:         Daily,
		Date:           "2024-01-01",
		Language:       locale.Chinese,
		Overview:       "白羊座今天的健康状况需要关注。确保你有足够的休息，并注意饮食和锻炼，保持身心健康。",
		Mood:           "冷静",
		LuckyNumber:    "71",
		LuckyColor:     "银色",
		Compatibility:  "处女座",
		CompatibleSign: zodiac.Virgo,
		Work:           "白羊座今天应该注意工作与生活的平衡。不要让工作压力影响你的健康和个人生活。",
		Love:           "白羊座今天可能会感到有些情感波动。尝试理解这些情绪的根源，避免将负面情绪投射到伴侣身上。",
		Health:         "白羊座今天应该避免过度劳累。合理安排你的时间和精力，避免倦怠。",
		Relationships:  "白羊座今天可能会遇到一些社交挑战，记住保持真实的自我，而不是迎合他人的期望。",
	}
	got := Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.Chinese)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected content (-want +got):\n%s", diff)
	}
}

func TestGenerate_AriesDailyEnglish(t *testing.T) {
	want := Content{
		Sign:           zodiac.Aries,
		Period:         Daily,
		Date:           "2024-01-01",
		Language:       locale.English,
		Overview:       "Aries should keep an eye on health today. Make sure you get enough rest and watch your diet and exercise to stay well in body and mind.",
		Mood:           "Composed",
		LuckyNumber:    "71",
		LuckyColor:     "Silver",
		Compatibility:  "Virgo",
		CompatibleSign: zodiac.Virgo,
		Work:           "Aries should watch the balance between work and life today. Don't let work pressure affect your health and personal life.",
		Love:           "Aries may feel some emotional swings today. Try to understand where these feelings come from and avoid projecting them onto your partner.",
		Health:         "Aries should avoid overwork today. Plan your time and energy sensibly to avoid burnout.",
		Relationships:  "Aries may face some social challenges today. Stay true to yourself rather than meeting others' expectations.",
	}
	got := Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.English)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected content (-want +got):\n%s", diff)
	}
}

func TestGenerate_OtherFixtures(t *testing.T) {
	leo := Generate(zodiac.Leo, Weekly, day("2024-03-10"), locale.Chinese)
	require.Equal(t, "这周是狮子座展示才能的好时机。不要害怕站在聚光灯下，你的努力和才华将得到认可和赞赏。", leo.Overview)
	require.Equal(t, "兴奋", leo.Mood)
	require.Equal(t, "11", leo.LuckyNumber)
	require.Equal(t, zodiac.Pisces, leo.CompatibleSign)

	leoEn := Generate(zodiac.Leo, Weekly, day("2024-03-10"), locale.English)
	require.True(t, strings.HasPrefix(leoEn.Overview, "This week is a good time for Leo"), leoEn.Overview)

	capricorn := Generate(zodiac.Capricorn, Yearly, day("2025-06-15"), locale.Chinese)
	require.Equal(t, "今年对于摩羯座来说是充满活力的时段。你的创造力和直觉都处于高峰状态，这将帮助你解决一些棘手的问题。", capricorn.Overview)
	require.Equal(t, "平静", capricorn.Mood)
	require.Equal(t, "37", capricorn.LuckyNumber)
	require.Equal(t, "巨蟹座", capricorn.Compatibility)

	pisces := Generate(zodiac.Pisces, Tomorrow, day("2024-12-31"), locale.Chinese)
	require.Equal(t, "49", pisces.LuckyNumber)
	require.Equal(t, zodiac.Leo, pisces.CompatibleSign)
	require.Contains(t, pisces.Overview, "明天")
}

func TestGenerate_UnknownPeriodUsesTodayPrefix(t *testing.T) {
	got := Generate(zodiac.Aries, Period(""), day("2024-01-01"), locale.Chinese)
	require.Equal(t, "今天是白羊座反思和计划的好时机。花些时间思考你的长期目标，并制定实现这些目标的具体步骤。", got.Overview)
	require.Equal(t, "敏感", got.Mood)
	require.Equal(t, "83", got.LuckyNumber)
	require.Equal(t, zodiac.Libra, got.CompatibleSign)

	en := Generate(zodiac.Aries, Period("fortnightly"), day("2024-01-01"), locale.English)
	daily := Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.English)
	require.True(t, strings.HasPrefix(en.Overview, "Today "), en.Overview)
	require.Equal(t, daily.Overview, en.Overview)
	require.Equal(t, daily.Work, en.Work)
}

func TestGenerate_UnknownSignUsesFullList(t *testing.T) {
	got := Generate(zodiac.Unknown, Daily, day("2024-01-01"), locale.Chinese)
	require.Equal(t, zodiac.Aquarius, got.CompatibleSign)
	require.Equal(t, "56", got.LuckyNumber)
	require.Contains(t, got.Overview, "未知星座")
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(zodiac.Scorpio, Monthly, day("2024-06-15"), locale.English)
	b := Generate(zodiac.Scorpio, Monthly, day("2024-06-15"), locale.English)
	require.Empty(t, cmp.Diff(a, b))

	shifted := time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC)
	c := Generate(zodiac.Scorpio, Monthly, shifted, locale.English)
	require.Empty(t, cmp.Diff(a, c))
}

func TestGenerate_Properties(t *testing.T) {
	start := day("2024-01-01")
	for _, sign := range zodiac.Signs() {
		for _, period := range Periods() {
			for offset := 0; offset < 40; offset++ {
				date := start.AddDate(0, 0, offset*9)
				zh := Generate(sign, period, date, locale.Chinese)
				en := Generate(sign, period, date, locale.English)

				n, err := strconv.Atoi(zh.LuckyNumber)
				require.NoError(t, err)
				require.GreaterOrEqual(t, n, 1)
				require.LessOrEqual(t, n, 99)
				require.NotEqual(t, sign, zh.CompatibleSign)

				require.Equal(t, zh.LuckyNumber, en.LuckyNumber)
				require.Equal(t, zh.CompatibleSign, en.CompatibleSign)
				require.Equal(t, slices.Index(phrasesZh.moods[:], zh.Mood), slices.Index(phrasesEn.moods[:], en.Mood))
				require.Equal(t, slices.Index(phrasesZh.colors[:], zh.LuckyColor), slices.Index(phrasesEn.colors[:], en.LuckyColor))
				require.NotContains(t, en.Overview, "{")
				require.NotContains(t, zh.Work, "{")
			}
		}
	}
}

func TestPhrasebooks_ShareTimePrefixes(t *testing.T) {
	for _, period := range Periods() {
		require.NotEmpty(t, phrasesZh.prefix(period))
		require.NotEmpty(t, phrasesEn.prefix(period))
	}
	require.Equal(t, "今天", phrasesZh.prefix(Period("x")))
	require.Equal(t, "today", phrasesEn.prefix(Period("x")))
	require.Equal(t, "This month", capitalize("this month"))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod(" Weekly ")
	require.NoError(t, err)
	require.Equal(t, Weekly, p)

	_, err = ParsePeriod("hourly")
	require.Error(t, err)
	_, err = ParsePeriod("")
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	key := NewKey(zodiac.Aries, Daily, day("2024-01-01"), locale.Language(""))
	require.Equal(t, "aries_daily_2024-01-01_zh", key.ID())
	require.Equal(t, "horoscope_aries_daily_2024-01-01_zh", key.CacheKey())

	content := Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.English)
	require.Equal(t, "aries_daily_2024-01-01_en", content.Key().ID())
}

func TestShareText(t *testing.T) {
	content := Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.English)
	text := ShareText(content)
	require.True(t, strings.HasPrefix(text, "Aries Today (2024-01-01)\n\n"), text)
	require.Contains(t, text, "Mood: Composed\n")
	require.Contains(t, text, "Lucky Number: 71\n")
	require.True(t, strings.HasSuffix(text, "- AstroMaster"))

	zh := ShareText(Generate(zodiac.Aries, Daily, day("2024-01-01"), locale.Chinese))
	require.True(t, strings.HasPrefix(zh, "白羊座 今日运势 (2024-01-01)"), zh)
	require.Contains(t, zh, "幸运颜色: 银色\n\n")
	require.True(t, strings.HasSuffix(zh, "- 星座大师"))
}
