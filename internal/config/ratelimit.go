package config

import (
	"os"
	"strconv"
	"time"
)

// RateLimitConfig defines settings for the redis-backed token bucket
// middleware. Two buckets exist: a general API bucket and a stricter one for
// the login endpoint.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	LoginCapacity  int
	LoginInterval  time.Duration
	TTL            time.Duration
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads environment variables to build a RateLimitConfig.
// Defaults mirror an API budget of 120/minute with a burst of 240, and a
// login budget of 10/minute.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBoolDefault("RATE_LIMIT_ENABLED", true),
		Capacity:       envIntDefault("RATE_LIMIT_BURST", 240),
		RefillTokens:   envIntDefault("RATE_LIMIT_REFILL_TOKENS", 2),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		LoginCapacity:  envIntDefault("LOGIN_RATE_LIMIT_BURST", 10),
		LoginInterval:  envDur("LOGIN_RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         getenvDefault("RATE_LIMIT_PREFIX", "rl"),
		Debug:          envBoolDefault("RATE_LIMIT_DEBUG", false),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if cfg.LoginCapacity < 1 {
		cfg.LoginCapacity = 1
	}
	if cfg.LoginInterval <= 0 {
		cfg.LoginInterval = time.Second
	}
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
