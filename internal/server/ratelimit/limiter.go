// Implements a thread-safe token bucket rate limiter.

// Package ratelimit implements per-client token bucket rate limiting for
// HTTP handlers. Clients are keyed by IP address; each key gets its own
// bucket, refilled continuously at the tier's configured rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int           // requests per window
	Remaining  int           // requests left in current window
	ResetAt    time.Time     // when the bucket will be full again
	RetryAfter time.Duration // how long to wait before retrying (0 if allowed)
}

// Limiter manages rate limit buckets per key using the token bucket algorithm.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	window  time.Duration
	stop    chan struct{}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a rate limiter allowing requests tokens per window
// with the given burst capacity. The window only scales the refill rate;
// tokens trickle in continuously rather than resetting per window.
func NewLimiter(requests int, window time.Duration, burst int) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(float64(requests) / window.Seconds()),
		burst:   burst,
		window:  window,
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow consumes one token from key's bucket if available and reports the
// bucket state for response headers.
func (l *Limiter) Allow(key string) Result {
	now := time.Now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()

	res := b.limiter.ReserveN(now, 1)
	allowed := res.OK() && res.DelayFrom(now) == 0
	if !allowed && res.OK() {
		// Denied requests must not consume the future token.
		res.CancelAt(now)
	}

	tokens := b.limiter.TokensAt(now)
	remaining := max(int(tokens), 0)

	// Time until the bucket refills completely.
	refill := time.Duration((float64(l.burst) - tokens) / float64(l.rate) * float64(time.Second))
	if refill < 0 {
		refill = 0
	}

	var retryAfter time.Duration
	if !allowed {
		// Time until one token is available, floored to a second so the
		// Retry-After header is never zero.
		retryAfter = max(time.Duration(1/float64(l.rate)*float64(time.Second)), time.Second)
	}

	return Result{
		Allowed:    allowed,
		Limit:      int(float64(l.rate) * l.window.Seconds()),
		Remaining:  remaining,
		ResetAt:    now.Add(refill),
		RetryAfter: retryAfter,
	}
}

// cleanupLoop drops idle buckets every 10 minutes to bound memory use.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup removes buckets that are both idle and fully refilled. A
// partially drained bucket is kept so a client cannot reset its budget by
// going quiet.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	stale := time.Now().Add(-10 * time.Minute)
	for key, b := range l.buckets {
		if b.lastSeen.Before(stale) && b.limiter.Tokens() >= float64(l.burst) {
			delete(l.buckets, key)
		}
	}
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	close(l.stop)
}
