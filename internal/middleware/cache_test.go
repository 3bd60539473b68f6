package middleware

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerzone/pitch-booking/internal/config"
)

func cacheServer(t *testing.T, cfg config.CacheConfig) (*echo.Echo, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hits := 0
	e := echo.New()
	e.GET("/pitches", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusOK, echo.Map{"success": true, "hits": hits})
	}, ResponseCache(cfg, rdb))
	e.GET("/broken", func(c echo.Context) error {
		hits++
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}, ResponseCache(cfg, rdb))
	return e, &hits
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestResponseCacheServesSecondRequestFromRedis(t *testing.T) {
	e, hits := cacheServer(t, cacheCfg())

	rec := get(e, "/pitches")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	first := rec.Body.String()

	rec = get(e, "/pitches")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, first, rec.Body.String(), "cached body must be byte-identical")
	assert.Equal(t, 1, *hits, "handler must run only once")
}

func TestResponseCacheKeyIncludesQuery(t *testing.T) {
	e, hits := cacheServer(t, cacheCfg())

	for i := 0; i < 3; i++ {
		rec := get(e, "/pitches?page="+strconv.Itoa(i))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 3, *hits)
}

func TestResponseCacheSkipsNon200(t *testing.T) {
	e, hits := cacheServer(t, cacheCfg())

	rec := get(e, "/broken")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	rec = get(e, "/broken")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 2, *hits, "error responses must not be cached")
}

func TestResponseCacheDisabledPassesThrough(t *testing.T) {
	e, hits := cacheServer(t, config.CacheConfig{Enabled: false})
	rec := get(e, "/pitches")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, *hits)
}
