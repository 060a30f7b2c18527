// Package fs provides the file adapters of the agent: data tables, inbox
// requests and staged response files.
package fs

import (
	"time"

	"github.com/cenkalti/backoff/v5"
)

// linearBackOff waits step, 2*step, 3*step and so on between attempts.
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() {
	b.n = 0
}

func retryOptions(attempts int, b backoff.BackOff) []backoff.RetryOption {
	if attempts < 1 {
		attempts = 1
	}
	return []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithMaxElapsedTime(0),
	}
}
