package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	"github.com/yanqian/astromaster/pkg/logger"
	"github.com/yanqian/astromaster/pkg/util"
)

type rootOptions struct {
	lang     string
	logLevel string
	now      func() time.Time
}

func (o *rootOptions) language() (locale.Language, error) {
	return locale.ParseLanguage(o.lang)
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel).With("component", "cli")
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: util.NowUTC}
	cmd := &cobra.Command{
		Use:           "astro",
		Short:         "Zodiac classification and deterministic horoscopes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.lang, "lang", "", "Display language (zh, en)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newClassifyCmd(opts),
		newHoroscopeCmd(opts),
		newSignsCmd(opts),
		newSeedCmd(opts),
	)
	return cmd
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify YYYY-MM-DD",
		Short: "Print the zodiac sign of a birthdate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := opts.language()
			if err != nil {
				return err
			}
			sign, err := zodiac.ClassifyString(args[0])
			if err != nil {
				return err
			}
			opts.logger(cmd).Debug("classified birthdate", "birthdate", args[0], "sign", sign.Key())
			profile := zodiac.Describe(sign, lang)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), profile)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", sign.Key(), profile.Name, profile.DateRange)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full sign profile as JSON")
	return cmd
}

func newHoroscopeCmd(opts *rootOptions) *cobra.Command {
	var (
		date     string
		timezone string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "horoscope SIGN [PERIOD]",
		Short: "Generate the horoscope bundle for a sign",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := opts.language()
			if err != nil {
				return err
			}
			sign, err := zodiac.ParseSign(args[0])
			if err != nil {
				return err
			}
			period := horoscope.Daily
			if len(args) == 2 {
				if period, err = horoscope.ParsePeriod(args[1]); err != nil {
					return err
				}
			}
			day, err := resolveDate(date, timezone, opts.now)
			if err != nil {
				return err
			}
			content := horoscope.Generate(sign, period, day, lang)
			opts.logger(cmd).Debug("generated horoscope", "key", content.Key().ID())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), content)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), horoscope.ShareText(content))
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Calendar date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&timezone, "tz", "Asia/Shanghai", "IANA timezone deciding which day is today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the bundle as JSON")
	return cmd
}

func newSignsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "signs",
		Short: "List the twelve signs with their date ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lang, err := opts.language()
			if err != nil {
				return err
			}
			profiles := make([]zodiac.Profile, 0, 12)
			for _, sign := range zodiac.Signs() {
				profiles = append(profiles, zodiac.Describe(sign, lang))
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), profiles)
			}
			out := cmd.OutOrStdout()
			for _, p := range profiles {
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", p.Sign.Key(), p.Name, p.DateRange); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print full profiles as JSON")
	return cmd
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed SIGN PERIOD YYYY-MM-DD",
		Short: "Print the generator seed for a sign, period and date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := zodiac.ParseSign(args[0])
			if err != nil {
				return err
			}
			period, err := horoscope.ParsePeriod(args[1])
			if err != nil {
				return err
			}
			day, err := util.ParseDate(args[2])
			if err != nil {
				return err
			}
			seed := horoscope.Seed(sign, period, day)
			opts.logger(cmd).Debug("computed seed", "sign", sign.Key(), "period", period, "date", args[2])
			_, err = fmt.Fprintln(cmd.OutOrStdout(), seed)
			return err
		},
	}
}

func resolveDate(raw, timezone string, now func() time.Time) (time.Time, error) {
	if raw != "" {
		return util.ParseDate(raw)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone: %w", err)
	}
	return util.CalendarDay(now(), loc), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
