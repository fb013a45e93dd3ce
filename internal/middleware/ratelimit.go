package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nattapong/restaurant-order-api/internal/config"
)

// NewRateLimiter returns a fixed-window limiter backed by Redis, keyed by
// client IP and route.  The first hit of a window sets the expiry; once the
// counter passes the limit the request is rejected with 429 and a
// Retry-After hint.  Redis errors fail open so an unavailable Redis never
// blocks traffic.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			route := c.Request().Method + " " + c.Path()
			key := strings.Join([]string{cfg.Prefix, ip, route}, ":")

			ctx := c.Request().Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				retry := cfg.Window
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retry = ttl
				}
				secs := int(math.Ceil(retry.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}
