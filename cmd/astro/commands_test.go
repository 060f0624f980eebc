package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "1990-08-15", "--lang", "en")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "leo\tLeo\t"), out)

	out, err = execute(t, "classify", "2000-01-05")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "capricorn\t摩羯座\t"), out)

	out, err = execute(t, "classify", "1990-08-15", "--json")
	require.NoError(t, err)
	var profile zodiac.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	require.Equal(t, zodiac.Leo, profile.Sign)

	_, err = execute(t, "classify", "1990-02-30")
	require.Error(t, err)

	_, err = execute(t, "classify", "1990-08-15", "--lang", "fr")
	require.Error(t, err)
}

func TestHoroscopeCommand(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out, err := execute(t, "horoscope", "aries", "daily", "--date", "2024-01-01", "--json")
	require.NoError(t, err)
	var got horoscope.Content
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, horoscope.Generate(zodiac.Aries, horoscope.Daily, day, locale.Chinese), got)

	out, err = execute(t, "horoscope", "Aries", "--date", "2024-01-01", "--lang", "en")
	require.NoError(t, err)
	want := horoscope.ShareText(horoscope.Generate(zodiac.Aries, horoscope.Daily, day, locale.English))
	require.Equal(t, want+"\n", out)

	_, err = execute(t, "horoscope", "ophiuchus", "daily")
	require.Error(t, err)
	_, err = execute(t, "horoscope", "aries", "hourly")
	require.Error(t, err)
	_, err = execute(t, "horoscope", "aries", "daily", "--tz", "Mars/Olympus")
	require.Error(t, err)
}

func TestResolveDateUsesTimezone(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC) }

	got, err := resolveDate("", "Asia/Shanghai", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = resolveDate("", "UTC", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = resolveDate("2023-06-30", "UTC", now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestSignsCommand(t *testing.T) {
	out, err := execute(t, "signs", "--lang", "en")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 12)
	require.True(t, strings.HasPrefix(lines[0], "aries\tAries\t"), lines[0])
	require.True(t, strings.HasPrefix(lines[11], "pisces\tPisces\t"), lines[11])

	out, err = execute(t, "signs", "--json")
	require.NoError(t, err)
	var profiles []zodiac.Profile
	require.NoError(t, json.Unmarshal([]byte(out), &profiles))
	require.Len(t, profiles, 12)
	require.Equal(t, "白羊座", profiles[0].Name)
}

func TestSeedCommand(t *testing.T) {
	out, err := execute(t, "seed", "aries", "daily", "2024-01-01")
	require.NoError(t, err)
	require.Equal(t, "1396607425\n", out)

	_, err = execute(t, "seed", "aries", "daily")
	require.Error(t, err)
	_, err = execute(t, "seed", "aries", "daily", "01/01/2024")
	require.Error(t, err)
}
