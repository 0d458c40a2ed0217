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

	"github.com/iliyamo/dorm-management/internal/config"
)

func cacheEnv(t *testing.T) (*miniredis.Miniredis, *redis.Client, config.CacheConfig) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb, config.CacheConfig{Enabled: true, TTL: time.Hour, Prefix: "cache"}
}

// listHandler counts invocations and returns a fixed list payload.
type listHandler struct {
	calls  int
	status int
}

func (h *listHandler) serve(c echo.Context) error {
	h.calls++
	if h.status != 0 && h.status != http.StatusOK {
		return c.JSON(h.status, echo.Map{"message": "not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "rooms retrieved successfully",
		"data":    []string{"101", "102"},
	})
}

func send(t *testing.T, mw echo.MiddlewareFunc, h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(h)(c))
	return rec
}

func TestResponseCacheHitIsByteIdentical(t *testing.T) {
	_, rdb, cfg := cacheEnv(t)
	mw := ResponseCache(cfg, rdb)
	h := &listHandler{}

	first := send(t, mw, h.serve, http.MethodGet, "/v1/rooms")
	second := send(t, mw, h.serve, http.MethodGet, "/v1/rooms")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes(), "cached replay must be byte-identical")
	assert.Equal(t, 1, h.calls, "handler must run once for identical requests")
}

// Query strings are part of the key verbatim; parameter order matters.
func TestResponseCacheQueryStringKeys(t *testing.T) {
	_, rdb, cfg := cacheEnv(t)
	mw := ResponseCache(cfg, rdb)
	h := &listHandler{}

	send(t, mw, h.serve, http.MethodGet, "/v1/rooms?buildingId=1&status=Available")
	send(t, mw, h.serve, http.MethodGet, "/v1/rooms?status=Available&buildingId=1")

	assert.Equal(t, 2, h.calls, "reordered query strings are distinct entries")
}

func TestResponseCacheSkipsNonGet(t *testing.T) {
	mr, rdb, cfg := cacheEnv(t)
	mw := ResponseCache(cfg, rdb)
	h := &listHandler{}

	send(t, mw, h.serve, http.MethodPost, "/v1/rooms")
	send(t, mw, h.serve, http.MethodPost, "/v1/rooms")

	assert.Equal(t, 2, h.calls)
	assert.Empty(t, mr.Keys(), "mutations must never be cached")
}

func TestResponseCacheSkipsNon2xx(t *testing.T) {
	mr, rdb, cfg := cacheEnv(t)
	mw := ResponseCache(cfg, rdb)
	h := &listHandler{status: http.StatusNotFound}

	send(t, mw, h.serve, http.MethodGet, "/v1/rooms/999")
	send(t, mw, h.serve, http.MethodGet, "/v1/rooms/999")

	assert.Equal(t, 2, h.calls, "error responses must not be served from cache")
	assert.Empty(t, mr.Keys())
}

func TestResponseCacheFailsOpen(t *testing.T) {
	mr, rdb, cfg := cacheEnv(t)
	mr.Close() // Redis down before the first request

	mw := ResponseCache(cfg, rdb)
	h := &listHandler{}
	rec := send(t, mw, h.serve, http.MethodGet, "/v1/rooms")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.calls, "an unreachable cache must not block the request")
}

func TestResponseCacheDisabledPassthrough(t *testing.T) {
	mw := ResponseCache(config.CacheConfig{Enabled: false}, nil)
	h := &listHandler{}

	send(t, mw, h.serve, http.MethodGet, "/v1/rooms")
	send(t, mw, h.serve, http.MethodGet, "/v1/rooms")

	assert.Equal(t, 2, h.calls)
}

func TestInvalidateCacheDropsMatchingEntries(t *testing.T) {
	_, rdb, cfg := cacheEnv(t)
	cacheMW := ResponseCache(cfg, rdb)
	h := &listHandler{}

	// Warm the cache, then mutate through the invalidator.
	send(t, cacheMW, h.serve, http.MethodGet, "/v1/rooms")
	require.Equal(t, 1, h.calls)

	invMW := InvalidateCache(cfg, rdb, "/v1/rooms")
	write := func(c echo.Context) error {
		return c.JSON(http.StatusCreated, echo.Map{"message": "room created successfully"})
	}
	send(t, invMW, write, http.MethodPost, "/v1/rooms")

	rec := send(t, cacheMW, h.serve, http.MethodGet, "/v1/rooms")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, h.calls, "a write must evict the cached listing")
}

func TestInvalidateCacheKeepsEntriesOnFailure(t *testing.T) {
	_, rdb, cfg := cacheEnv(t)
	cacheMW := ResponseCache(cfg, rdb)
	h := &listHandler{}

	send(t, cacheMW, h.serve, http.MethodGet, "/v1/rooms")

	invMW := InvalidateCache(cfg, rdb, "/v1/rooms")
	failingWrite := func(c echo.Context) error {
		return c.JSON(http.StatusConflict, echo.Map{"message": "room number already exists"})
	}
	send(t, invMW, failingWrite, http.MethodPost, "/v1/rooms")

	rec := send(t, cacheMW, h.serve, http.MethodGet, "/v1/rooms")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"), "a failed write must not evict")
	assert.Equal(t, 1, h.calls)
}
