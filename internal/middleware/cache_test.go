package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/minjae/escape-room-booking/internal/config"
)

func cacheTestContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	// Both detail URLs resolve to the same Echo route pattern.
	c.SetPath("/v1/themes/:id")
	return c
}

func TestCacheKeyDistinguishesParameterizedURLs(t *testing.T) {
	cfg := config.LoadCacheConfig()

	k1 := cacheKeyFrom(cfg, cacheTestContext("/v1/themes/1"))
	k2 := cacheKeyFrom(cfg, cacheTestContext("/v1/themes/2"))
	assert.NotEqual(t, k1, k2, "different theme IDs must not share a cache entry")

	again := cacheKeyFrom(cfg, cacheTestContext("/v1/themes/1"))
	assert.Equal(t, k1, again, "same URL must produce a stable key")
}

func TestCacheKeyIncludesQueryString(t *testing.T) {
	cfg := config.LoadCacheConfig()

	plain := cacheKeyFrom(cfg, cacheTestContext("/v1/themes/1"))
	sorted := cacheKeyFrom(cfg, cacheTestContext("/v1/themes/1?sort=rating"))
	assert.NotEqual(t, plain, sorted)
}

func TestCacheBypassOnAuthorization(t *testing.T) {
	c := cacheTestContext("/v1/themes/1")
	assert.False(t, cacheBypass(c))

	c.Request().Header.Set("Authorization", "Bearer whatever")
	assert.True(t, cacheBypass(c), "credentialed requests get per-account bodies and must skip the cache")
}
