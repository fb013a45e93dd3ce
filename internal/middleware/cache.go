package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nattapong/restaurant-order-api/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cache entry.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// bodyRecorder duplicates the response body into a buffer while writing it
// through to the client, so a successful response can be stored afterwards.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses in Redis.  Hits are
// replayed as JSON with an X-Cache: HIT header; anything that is not a 200
// JSON response passes through untouched.  Redis failures fail open.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg.Prefix, c)

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var entry cachedResponse
				if json.Unmarshal(raw, &entry) == nil && entry.Status != 0 {
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(entry.Status, echo.MIMEApplicationJSONCharsetUTF8, entry.Body)
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && rec.buf.Len() > 0 && rec.buf.Len() <= cfg.MaxBodyBytes {
				entry := cachedResponse{Status: rec.status, Body: json.RawMessage(rec.buf.Bytes())}
				if payload, err := json.Marshal(entry); err == nil {
					_ = rdb.Set(ctx, key, payload, ttl).Err()
				}
			}
			return nil
		}
	}
}

func cacheKey(prefix string, c echo.Context) string {
	r := c.Request()
	sum := sha1.Sum([]byte(r.Method + " " + c.Path() + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}
