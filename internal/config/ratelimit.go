package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the login
// and register endpoints.  Limit requests are allowed per Window per
// client IP and route.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads limiter settings from the environment with
// defaults.  Nonsensical values are clamped rather than rejected.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_LIMIT", 60),
		Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
