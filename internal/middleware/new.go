package middleware

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"fast-generic-api/pkg/log"
)

// Config is the dependency bag passed to New().
type Config struct {
	// APIKeys accepted as Bearer tokens. Empty disables authentication.
	APIKeys []string
	// RateLimitPerMin per client IP. Zero or less disables rate limiting.
	RateLimitPerMin int
	// Registerer receives the HTTP metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

type Middleware struct {
	l       log.Logger
	apiKeys map[string]struct{}
	limiter *rateLimiter
	metrics *httpMetrics
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:       l,
		apiKeys: parseAPIKeys(cfg.APIKeys),
	}
	if cfg.RateLimitPerMin > 0 {
		mw.limiter = newRateLimiter(cfg.RateLimitPerMin)
	}
	if cfg.Registerer != nil {
		mw.metrics = newHTTPMetrics(cfg.Registerer)
	}
	return mw
}

// parseAPIKeys trims keys into a set, dropping blanks.
func parseAPIKeys(keys []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, k := range keys {
		if v := strings.TrimSpace(k); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
