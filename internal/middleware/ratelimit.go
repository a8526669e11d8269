package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mardelta/portfolio-api/internal/config"
)

// limiterScript implements a token bucket in redis. Atomicity matters: the
// refill and the take must happen in one round trip or concurrent requests
// over-count.
var limiterScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
    redis.call('EXPIRE', key, ttl_seconds)

    return { allowed, tokens, retry_after_ms }
`)

type bucket struct {
	capacity int
	refill   int
	interval time.Duration
	ttl      time.Duration
	prefix   string
	debug    bool
	rdb      *redis.Client
}

// NewAPIBucket returns the general per-IP rate limiter. When rate limiting is
// disabled or redis is unavailable the middleware is a no-op; availability of
// the API wins over strict enforcement.
func NewAPIBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	b := bucket{
		capacity: cfg.Capacity,
		refill:   cfg.RefillTokens,
		interval: cfg.RefillInterval,
		ttl:      cfg.TTL,
		prefix:   cfg.Prefix + ":api",
		debug:    cfg.Debug,
		rdb:      rdb,
	}
	return b.middleware()
}

// NewLoginBucket returns the stricter per-IP limiter for the login endpoint.
// Password guessing is the threat here, so the bucket is small and refills
// slowly.
func NewLoginBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	b := bucket{
		capacity: cfg.LoginCapacity,
		refill:   1,
		interval: cfg.LoginInterval,
		ttl:      cfg.TTL,
		prefix:   cfg.Prefix + ":login",
		debug:    cfg.Debug,
		rdb:      rdb,
	}
	return b.middleware()
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

func (b bucket) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := b.prefix + ":ip:" + ip

			args := []interface{}{
				time.Now().UnixMilli(),
				b.capacity,
				b.refill,
				b.interval.Milliseconds(),
				int64(b.ttl / time.Second),
			}

			ctx := c.Request().Context()
			vals, err := limiterScript.Run(ctx, b.rdb, []string{key}, args...).Result()
			if err != nil {
				// Redis trouble must not take the API down.
				if b.debug {
					c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
				}
				return next(c)
			}

			allowed := false
			remaining := int64(0)
			retryMs := int64(0)
			if arr, ok := vals.([]interface{}); ok && len(arr) == 3 {
				if i, ok := arr[0].(int64); ok {
					allowed = i == 1
				} else {
					allowed = fmt.Sprint(arr[0]) == "1"
				}
				remaining = asInt64(arr[1])
				retryMs = asInt64(arr[2])
			} else {
				if b.debug {
					c.Logger().Warnf("[ratelimit] unexpected script result for key=%s: %#v", key, vals)
				}
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(b.capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(retryMs) / 1000.0))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too_many_requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case float32:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
