package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerzone/pitch-booking/internal/config"
)

func rateLimitServer(t *testing.T, cfg config.RateLimitConfig) (*echo.Echo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, RateLimit(cfg, rdb))
	return e, mr
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitExhaustsBucket(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       3,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e, _ := rateLimitServer(t, cfg)

	for i := 0; i < 3; i++ {
		rec := get(e, "/ping")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := get(e, "/ping")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitRefills(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
	e, mr := rateLimitServer(t, cfg)

	require.Equal(t, http.StatusOK, get(e, "/ping").Code)
	require.Equal(t, http.StatusTooManyRequests, get(e, "/ping").Code)

	// miniredis time is frozen; advancing it refills the bucket.  The
	// limiter passes wall-clock milliseconds into the script, so waiting
	// out the interval is still required.
	mr.FastForward(2 * time.Second)
	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, get(e, "/ping").Code)
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	e, _ := rateLimitServer(t, config.RateLimitConfig{Enabled: false})
	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, get(e, "/ping").Code)
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1}
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, RateLimit(cfg, nil))

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, get(e, "/ping").Code)
	}
}
