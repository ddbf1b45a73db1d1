package access

import (
	"context"
	"time"
)

// DefaultVerifyDelay emulates the round trip of a remote access-code check.
const DefaultVerifyDelay = 500 * time.Millisecond

// Match is the comparator: exact string equality, no trimming, no case
// folding. Entered digits come from a constrained keypad, so canonical
// decimal characters are guaranteed by construction.
func Match(entered, expected string) bool {
	return entered == expected
}

// Verifier resolves a full code entry to match/mismatch. The flow treats it
// as an asynchronous step so tests can inject a synchronous implementation
// instead of waiting on a timer.
type Verifier interface {
	Verify(ctx context.Context, entered, expected string) (bool, error)
}

// DelayedVerifier waits Delay before comparing, honouring context
// cancellation so a dismissed flow never receives a stale result.
type DelayedVerifier struct {
	Delay time.Duration
}

func (v DelayedVerifier) Verify(ctx context.Context, entered, expected string) (bool, error) {
	d := v.Delay
	if d <= 0 {
		d = DefaultVerifyDelay
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-t.C:
	}
	return Match(entered, expected), nil
}

// InstantVerifier compares immediately, for tests and callers that do not
// want the simulated round trip.
type InstantVerifier struct{}

func (InstantVerifier) Verify(_ context.Context, entered, expected string) (bool, error) {
	return Match(entered, expected), nil
}
