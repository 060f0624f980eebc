package horoscope

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/astromaster/internal/domain/locale"
	"github.com/yanqian/astromaster/internal/domain/zodiac"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
	"github.com/yanqian/astromaster/pkg/metrics"
	"github.com/yanqian/astromaster/pkg/util"
)

// Service serves horoscopes through a cache, a persistent store and the generator.
type Service interface {
	Get(ctx context.Context, req Request) (Response, error)
	Forecast(ctx context.Context, req ForecastRequest) (ForecastResponse, error)
	ClearCache(ctx context.Context) (int, error)
	Prewarm(ctx context.Context, sign zodiac.Sign, lang locale.Language) error
	HandleJob(ctx context.Context, name string, payload map[string]any)
}

// Option customises the service.
type Option func(*service)

// WithClock replaces the wall clock used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	cfg     Config
	repo    Repository
	cache   Cache
	queue   JobQueue
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
	group   singleflight.Group
}

// NewService wires up the horoscope domain. queue may be nil, in which case
// prewarm jobs run inline.
func NewService(cfg Config, repo Repository, cache Cache, queue JobQueue, recorder metrics.Recorder, logger *slog.Logger, opts ...Option) Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	cfg.DefaultLanguage = cfg.DefaultLanguage.OrDefault()
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	s := &service{
		cfg:     cfg,
		repo:    repo,
		cache:   cache,
		queue:   queue,
		metrics: recorder,
		logger:  logger.With("component", "horoscope.service"),
		now:     util.NowUTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, req Request) (Response, error) {
	sign, err := parseSign(req.Sign)
	if err != nil {
		return Response{}, err
	}
	period, err := ParsePeriod(req.Period)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	lang, err := s.language(req.Language)
	if err != nil {
		return Response{}, err
	}

	var day time.Time
	if strings.TrimSpace(req.Date) == "" {
		day = s.today()
		if period == Tomorrow {
			day = day.AddDate(0, 0, 1)
		}
	} else {
		day, err = parseDay(req.Date)
		if err != nil {
			return Response{}, err
		}
	}
	return s.lookup(ctx, NewKey(sign, period, day, lang), day)
}

func (s *service) Forecast(ctx context.Context, req ForecastRequest) (ForecastResponse, error) {
	sign, err := parseSign(req.Sign)
	if err != nil {
		return ForecastResponse{}, err
	}
	lang, err := s.language(req.Language)
	if err != nil {
		return ForecastResponse{}, err
	}
	base := s.today()
	if strings.TrimSpace(req.Date) != "" {
		if base, err = parseDay(req.Date); err != nil {
			return ForecastResponse{}, err
		}
	}

	out := ForecastResponse{
		Sign:       sign,
		Date:       util.FormatDate(base),
		Language:   lang,
		Horoscopes: make([]Response, 0, len(Periods())),
	}
	for _, period := range Periods() {
		day := base
		if period == Tomorrow {
			day = base.AddDate(0, 0, 1)
		}
		resp, err := s.lookup(ctx, NewKey(sign, period, day, lang), day)
		if err != nil {
			return ForecastResponse{}, err
		}
		out.Horoscopes = append(out.Horoscopes, resp)
	}
	return out, nil
}

func (s *service) ClearCache(ctx context.Context) (int, error) {
	removed, err := s.cache.Clear(ctx)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeHoroscope, "failed to clear horoscope cache", err)
	}
	s.logger.Info("horoscope cache cleared", "removed", removed)
	return removed, nil
}

func (s *service) Prewarm(ctx context.Context, sign zodiac.Sign, lang locale.Language) error {
	if !sign.Valid() {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "zodiac sign is required", nil)
	}
	if !lang.Valid() {
		lang = s.cfg.DefaultLanguage
	}
	payload := map[string]any{"sign": sign.Key(), "language": string(lang)}
	if s.queue == nil {
		s.HandleJob(ctx, JobPrewarm, payload)
		return nil
	}
	if err := s.queue.Enqueue(ctx, JobPrewarm, payload); err != nil {
		return apperrors.Wrap(apperrors.CodeHoroscope, "failed to enqueue prewarm", err)
	}
	return nil
}

func (s *service) HandleJob(ctx context.Context, name string, payload map[string]any) {
	if name != JobPrewarm {
		s.logger.Warn("ignoring unknown job", "job", name)
		return
	}
	sign, _ := payload["sign"].(string)
	lang, _ := payload["language"].(string)
	resp, err := s.Get(ctx, Request{Sign: sign, Period: string(Daily), Language: lang})
	if err != nil {
		s.logger.Warn("horoscope prewarm failed", "sign", sign, "error", err)
		return
	}
	s.logger.Debug("horoscope prewarmed", "key", resp.Horoscope.Key().ID(), "source", resp.Source)
}

// lookup is the cache-aside read path. Concurrent misses on one key share a
// single store read and generation.
func (s *service) lookup(ctx context.Context, key Key, day time.Time) (Response, error) {
	cached, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("horoscope cache lookup failed", "key", key.CacheKey(), "error", err)
		s.metrics.ObserveCacheError("get")
	} else if found {
		s.metrics.ObserveLookup(metrics.SourceCache)
		return Response{Horoscope: cached, Source: metrics.SourceCache}, nil
	}

	// The shared load outlives any single caller's cancellation.
	value, err, _ := s.group.Do(key.CacheKey(), func() (any, error) {
		return s.loadOrGenerate(context.WithoutCancel(ctx), key, day)
	})
	if err != nil {
		return Response{}, err
	}
	resp := value.(Response)
	s.metrics.ObserveLookup(resp.Source)
	return resp, nil
}

func (s *service) loadOrGenerate(ctx context.Context, key Key, day time.Time) (Response, error) {
	content, found, err := s.repo.Find(ctx, key)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeHoroscope, "horoscope lookup failed", err)
	}
	source := metrics.SourceStore
	if !found {
		content = Generate(key.Sign, key.Period, day, key.Language)
		if err := s.repo.Save(ctx, content); err != nil {
			return Response{}, apperrors.Wrap(apperrors.CodeHoroscope, "failed to save horoscope", err)
		}
		source = metrics.SourceGenerated
		s.logger.Debug("horoscope generated", "key", key.ID())
	}
	if err := s.cache.Save(ctx, content, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("horoscope cache save failed", "key", key.CacheKey(), "error", err)
		s.metrics.ObserveCacheError("save")
	}
	return Response{Horoscope: content, Source: source}, nil
}

func (s *service) today() time.Time {
	return util.CalendarDay(s.now(), s.cfg.Location)
}

func (s *service) language(raw string) (locale.Language, error) {
	if strings.TrimSpace(raw) == "" {
		return s.cfg.DefaultLanguage, nil
	}
	lang, err := locale.ParseLanguage(raw)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return lang, nil
}

func parseSign(raw string) (zodiac.Sign, error) {
	sign, err := zodiac.ParseSign(raw)
	if err != nil {
		return zodiac.Unknown, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return sign, nil
}

func parseDay(raw string) (time.Time, error) {
	day, err := util.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	return day, nil
}
