// Package ratelimit enforces a minimum delay between scrape attempts per key.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is the default minimum spacing between requests for a key.
const DefaultDelay = 2 * time.Second

// Limiter enforces a minimum delay between calls for the same key.
// It is safe for concurrent use: the per-key mutex is held across the
// wait, so concurrent callers for the same key are truly serialized and
// each gets the full spacing, rather than racing a check-then-sleep.
type Limiter struct {
	keyOverride map[string]time.Duration // per-key minimum delays
	lastRequest sync.Map                 // map[string]time.Time
	mu          sync.Map                 // map[string]*sync.Mutex - per-key locks
	logger      *slog.Logger
	minDelay    time.Duration
}

// New creates a limiter that enforces minDelay between calls for the same
// key. Key-specific overrides can be set with SetKeyDelay.
func New(minDelay time.Duration, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		minDelay:    minDelay,
		keyOverride: make(map[string]time.Duration),
		logger:      logger,
	}
}

// SetKeyDelay sets a custom minimum delay for a specific key.
// This overrides the default minDelay for that key. Not safe to call
// concurrently with Wait; configure before use.
func (r *Limiter) SetKeyDelay(key string, delay time.Duration) {
	r.keyOverride[key] = delay
}

// Wait blocks until at least the configured delay has passed since the
// last call for key, then records the new timestamp. Returns early with
// ctx.Err() if the context is canceled while waiting.
func (r *Limiter) Wait(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	muI, _ := r.mu.LoadOrStore(key, &sync.Mutex{})
	mu, ok := muI.(*sync.Mutex)
	if !ok {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	delay := r.minDelay
	if override, ok := r.keyOverride[key]; ok {
		delay = override
	}

	if lastI, ok := r.lastRequest.Load(key); ok {
		if last, ok := lastI.(time.Time); ok {
			if elapsed := time.Since(last); elapsed < delay {
				waitTime := delay - elapsed
				r.logger.Debug("rate limit pause", "key", key, "wait", waitTime)

				timer := time.NewTimer(waitTime)
				defer timer.Stop()
				select {
				case <-timer.C:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}

	r.lastRequest.Store(key, time.Now())
	return nil
}
