// ABOUTME: Retry backoff for calls to the embedding and generation provider
// ABOUTME: Exponential growth with jitter, capped so callers wait bounded time
package util

import (
	"math/rand/v2"
	"time"
)

// DefaultMaxBackoff bounds a single retry sleep when the caller does
// not supply its own cap.
const DefaultMaxBackoff = 30 * time.Second

// CalculateBackoff returns the sleep before retry number attempt:
// baseDelay doubled per attempt, capped at maxDelay, with +/- 25%
// jitter so concurrent clients do not retry in lockstep. Attempt 0 is
// the first try and sleeps nothing. maxDelay <= 0 selects
// DefaultMaxBackoff.
func CalculateBackoff(baseDelay time.Duration, attempt int, maxDelay time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxBackoff
	}

	// Clamp the shift so the multiplier cannot overflow
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxDelay || backoff <= 0 {
		backoff = maxDelay
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
