package ratelimit

import (
	"context"

	"github.com/smallbiznis/kursus/internal/config"
	"go.uber.org/zap"
)

// Limiter applies a per-client token bucket. When disabled or when redis is
// unavailable it allows every request; rate limiting is best effort and must
// never take the API down with it.
type Limiter struct {
	bucket  *TokenBucket
	log     *zap.Logger
	rate    float64
	burst   int
	enabled bool
}

func NewLimiter(bucket *TokenBucket, cfg config.Config, log *zap.Logger) *Limiter {
	return &Limiter{
		bucket:  bucket,
		log:     log.Named("ratelimit"),
		rate:    cfg.RateLimitRate,
		burst:   cfg.RateLimitBurst,
		enabled: cfg.RateLimitEnabled && bucket != nil,
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(ctx context.Context, key string) *Result {
	if l == nil || !l.enabled {
		return &Result{Allowed: true}
	}

	res, err := l.bucket.Allow(ctx, "ratelimit:"+key, l.rate, l.burst)
	if err != nil {
		l.log.Warn("rate limit check failed, allowing request", zap.Error(err))
		return &Result{Allowed: true}
	}
	return res
}
