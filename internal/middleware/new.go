package middleware

import (
	pkgLog "intent-router/pkg/log"
	"intent-router/pkg/metrics"
)

// Config tunes the shared middlewares.
type Config struct {
	RateLimitPerMin int    // per client IP; <= 0 disables rate limiting
	WebhookSecret   string // expected X-Telegram-Bot-Api-Secret-Token; empty disables the check
}

type Middleware struct {
	l             pkgLog.Logger
	limiter       *rateLimiter
	metrics       *metrics.Metrics
	webhookSecret string
}

func New(l pkgLog.Logger, cfg Config, m *metrics.Metrics) Middleware {
	mw := Middleware{
		l:             l,
		metrics:       m,
		webhookSecret: cfg.WebhookSecret,
	}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	return mw
}
