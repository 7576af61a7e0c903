// Package ratelimiter implements a token bucket rate limiter for provider API calls.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter is the minimal interface adapters depend on.
type RateLimiter interface {
	TakeToken() bool
	Wait()
}

// TokenBucket is a thread-safe token bucket. Tokens refill continuously at
// refillRate tokens per second up to capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a bucket with the given capacity and per-second refill rate.
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: float64(refillRate),
		lastRefill: time.Now(),
	}
}

// TakeToken consumes one token if available and reports whether it succeeded.
func (tb *TokenBucket) TakeToken() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	tb.tokens = min(tb.capacity, tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	waitTime := time.Second / time.Duration(tb.refillRate)
	if waitTime < 50*time.Millisecond {
		waitTime = 50 * time.Millisecond
	}

	for !tb.TakeToken() {
		time.Sleep(waitTime)
	}
}
