package middleware

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/dorm-management/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// cacheKey derives the cache key from the request. The path and query
// string are taken verbatim: no normalization of parameter order or
// casing, so ?a=1&b=2 and ?b=2&a=1 are distinct entries.
func cacheKey(prefix string, r *http.Request) string {
	return prefix + ":" + r.URL.RequestURI()
}

// encodeEntry packs: [4 bytes status][body].
func encodeEntry(status int, body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	copy(out[4:], body)
	return out
}

func decodeEntry(bs []byte) (status int, body []byte, ok bool) {
	if len(bs) < 4 {
		return 0, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	if status < 100 || status > 599 {
		return 0, nil, false
	}
	return status, bs[4:], true
}

// ResponseCache returns a middleware that serves GET responses from Redis.
// On a hit the stored body is written back verbatim and the handler never
// runs. On a miss the response is captured and, when the status is 2xx,
// stored with the configured TTL before the next identical request.
//
// The cache is strictly fail-open: a Redis error on lookup or store is
// logged and the request proceeds uncached. A corrupt entry counts as a
// miss. There is no locking around misses; two concurrent identical
// requests may both run the handler and both store the key, which is fine
// because entries are idempotent snapshots of read data.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c.Request())

			bs, err := rdb.Get(ctx, key).Bytes()
			switch {
			case err == nil:
				if status, body, ok := decodeEntry(bs); ok {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.JSONBlob(status, body)
				}
				// Corrupt entry: treat as a miss.
			case err != redis.Nil:
				c.Logger().Warnf("cache: redis get failed for %s: %v", key, err)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status >= 200 && cw.status < 300 {
				// Background context: the entry should be stored even if the
				// client has already disconnected.
				if err := rdb.SetEx(context.Background(), key, encodeEntry(cw.status, cw.buf.Bytes()), ttl).Err(); err != nil {
					c.Logger().Warnf("cache: redis set failed for %s: %v", key, err)
				}
			}
			return nil
		}
	}
}

// InvalidateCache returns a middleware for mutation routes. After the
// wrapped handler responds with a 2xx status, every cache entry whose path
// starts with one of the given prefixes is deleted, so list screens do not
// serve stale data for up to a full TTL after a write. Invalidation
// failures are logged and never affect the response.
func InvalidateCache(cfg config.CacheConfig, rdb *redis.Client, pathPrefixes ...string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			status := c.Response().Status
			if status < 200 || status >= 300 {
				return nil
			}
			ctx := context.Background()
			for _, p := range pathPrefixes {
				pattern := cfg.Prefix + ":" + p + "*"
				iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
				for iter.Next(ctx) {
					if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
						c.Logger().Warnf("cache: invalidate %s failed: %v", iter.Val(), err)
					}
				}
				if err := iter.Err(); err != nil {
					c.Logger().Warnf("cache: scan %s failed: %v", pattern, err)
				}
			}
			return nil
		}
	}
}
