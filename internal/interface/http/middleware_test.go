package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/astromaster/internal/infra/config"
	apperrors "github.com/yanqian/astromaster/pkg/errors"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestRateLimiterRefillsAndSweeps(t *testing.T) {
	clock := &fakeClock{t: fixedNow}
	limiter := newRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 2}, clock.now)

	ok, _ := limiter.take("1.1.1.1")
	require.True(t, ok)
	ok, _ = limiter.take("1.1.1.1")
	require.True(t, ok)
	ok, wait := limiter.take("1.1.1.1")
	require.False(t, ok)
	require.Equal(t, time.Second, wait)

	clock.advance(time.Second)
	ok, _ = limiter.take("1.1.1.1")
	require.True(t, ok)

	clock.advance(10 * time.Minute)
	ok, _ = limiter.take("2.2.2.2")
	require.True(t, ok)
	require.Len(t, limiter.buckets, 1)
	require.Contains(t, limiter.buckets, "2.2.2.2")
}

func TestRateLimitSetsRetryAfter(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 6, Burst: 1}
	server := newRouterUnderTest(t, cfg)

	rec := performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "10", rec.Header().Get("Retry-After"))
}

func TestBearerToken(t *testing.T) {
	token, err := bearerToken("Bearer abc.def")
	require.NoError(t, err)
	require.Equal(t, "abc.def", token)

	token, err = bearerToken("bearer   xyz ")
	require.NoError(t, err)
	require.Equal(t, "xyz", token)

	_, err = bearerToken("")
	require.ErrorIs(t, err, errMissingAuthorization)
	for _, header := range []string{"Basic abc", "Bearer", "Bearer   ", "token"} {
		_, err = bearerToken(header)
		require.ErrorIs(t, err, errMalformedAuthorization, header)
	}
}

func TestCORSPolicy(t *testing.T) {
	require.Equal(t, "*", newCORSPolicy(nil).allowOrigin("https://any.example"))
	require.Equal(t, "*", newCORSPolicy([]string{"https://a.example", "*"}).allowOrigin("https://b.example"))

	policy := newCORSPolicy([]string{" https://Astro.example "})
	require.Equal(t, "https://astro.example", policy.allowOrigin("https://astro.example"))
	require.Empty(t, policy.allowOrigin("https://evil.example"))
	require.Empty(t, policy.allowOrigin(""))
}

func TestCORSRejectedOriginGetsNoAllowHeader(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://astro.example"}
	server := newRouterUnderTest(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Retry-After", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestOAuthStateCodec(t *testing.T) {
	clock := &fakeClock{t: fixedNow}
	codec := newOAuthStateCodec("secret")
	codec.now = clock.now

	sealed, err := codec.seal(oauthFlow{State: "state-1", Verifier: "verifier-1"})
	require.NoError(t, err)

	flow, ok := codec.open(sealed)
	require.True(t, ok)
	require.Equal(t, "state-1", flow.State)
	require.Equal(t, "verifier-1", flow.Verifier)

	other := newOAuthStateCodec("another-secret")
	other.now = clock.now
	_, ok = other.open(sealed)
	require.False(t, ok)

	_, ok = codec.open("x" + sealed)
	require.False(t, ok)
	_, ok = codec.open("not-a-cookie")
	require.False(t, ok)

	clock.advance(oauthStateTTL + time.Second)
	_, ok = codec.open(sealed)
	require.False(t, ok)
}

func TestGoogleCallbackReportsDenial(t *testing.T) {
	cfg := newTestConfig()
	server := newRouterUnderTest(t, cfg)

	sealed, err := newOAuthStateCodec(cfg.Auth.Secret).seal(oauthFlow{State: "abc", Verifier: "v"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=abc&error=access_denied", nil)
	req.AddCookie(&http.Cookie{Name: oauthCookieName, Value: sealed})
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "oauth_denied", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
	require.Contains(t, rec.Header().Get("Set-Cookie"), oauthCookieName+"=;")
}

func TestFromDomain(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{apperrors.Wrap(apperrors.CodeInvalidInput, "bad date", nil), http.StatusBadRequest, "invalid_request"},
		{apperrors.Wrap(apperrors.CodeInvalidCredentials, "nope", nil), http.StatusUnauthorized, apperrors.CodeInvalidCredentials},
		{apperrors.Wrap(apperrors.CodeUsernameExists, "taken", nil), http.StatusConflict, apperrors.CodeUsernameExists},
		{apperrors.Wrap(apperrors.CodeAuthNotConfigured, "off", nil), http.StatusServiceUnavailable, apperrors.CodeAuthNotConfigured},
		{apperrors.Wrap(apperrors.CodeHoroscope, "store down", errors.New("boom")), http.StatusInternalServerError, "horoscope_failed"},
		{errors.New("plain"), http.StatusInternalServerError, "horoscope_failed"},
	}
	for _, tc := range cases {
		got := fromDomain(tc.err, "horoscope_failed")
		require.Equal(t, tc.wantStatus, got.Status, tc.err.Error())
		require.Equal(t, tc.wantCode, got.Code, tc.err.Error())
		require.ErrorIs(t, got, tc.err)
	}
}

func TestRetryDelayIsCapped(t *testing.T) {
	rt := &retrier{backoff: 100 * time.Millisecond}
	require.Equal(t, 100*time.Millisecond, rt.delay(1))
	require.Equal(t, 200*time.Millisecond, rt.delay(2))
	require.Equal(t, 800*time.Millisecond, rt.delay(4))
	require.Equal(t, maxRetryBackoff, rt.delay(10))
	require.Equal(t, maxRetryBackoff, (&retrier{}).delay(1))
}
