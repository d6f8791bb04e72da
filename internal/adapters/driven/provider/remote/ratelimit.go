package remote

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the request rate used when none is configured.
	DefaultRate = 5.0

	// DefaultRetryAfter is the pause after a 429 without a Retry-After header.
	DefaultRetryAfter = time.Second

	// MaxRetryAfter caps the pause a server can request.
	MaxRetryAfter = 30 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests proactively with a token bucket and
// reactively after the server answers 429.
type RateLimiter struct {
	bucket *rate.Limiter

	mu           sync.Mutex
	blockedUntil time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	until := r.blockedUntil
	r.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Backoff records a rate-limited response and returns how long requests
// are paused.
func (r *RateLimiter) Backoff(resp *http.Response) time.Duration {
	wait := DefaultRetryAfter
	if resp != nil {
		if v := resp.Header.Get(HeaderRetryAfter); v != "" {
			if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
				wait = time.Duration(seconds) * time.Second
			}
		}
	}
	wait = min(wait, MaxRetryAfter)

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(wait); until.After(r.blockedUntil) {
		r.blockedUntil = until
	}
	return wait
}
