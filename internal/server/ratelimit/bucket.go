// Package ratelimit throttles requests per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// tokenBucket is one keyed entry: a rate.Limiter plus the last time it was used
type tokenBucket struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastUsed time.Time
}

// newTokenBucket starts full with capacity tokens refilled at limit per second
func newTokenBucket(capacity int, limit rate.Limit, now time.Time) *tokenBucket {
	return &tokenBucket{
		limiter:  rate.NewLimiter(limit, capacity),
		lastUsed: now,
	}
}

// take consumes one token if available and reports the bucket state afterwards
func (b *tokenBucket) take(now time.Time) (allowed bool, remaining int, full time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastUsed = now
	allowed = b.limiter.AllowN(now, 1)

	tokens := max(b.limiter.TokensAt(now), 0)
	remaining = int(tokens)
	full = now.Add(b.untilTokens(float64(b.limiter.Burst()) - tokens))
	return allowed, remaining, full
}

// nextToken is how long after now until one whole token is available
func (b *tokenBucket) nextToken(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.untilTokens(1 - b.limiter.TokensAt(now))
}

// untilTokens converts a token deficit into refill time; must be called with mu held
func (b *tokenBucket) untilTokens(missing float64) time.Duration {
	limit := b.limiter.Limit()
	if missing <= 0 || limit <= 0 || limit == rate.Inf {
		return 0
	}
	return time.Duration(missing / float64(limit) * float64(time.Second))
}

func (b *tokenBucket) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUsed
}
