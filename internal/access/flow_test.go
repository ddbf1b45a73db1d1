package access

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFlow(t *testing.T, expected string) *Flow {
	t.Helper()
	f, err := NewFlow(expected, InstantVerifier{})
	require.NoError(t, err)
	return f
}

func TestNewFlowRejectsMissingOrMalformedCode(t *testing.T) {
	_, err := NewFlow("", InstantVerifier{})
	assert.ErrorIs(t, err, ErrNoAccessCode)

	_, err = NewFlow("1234", InstantVerifier{})
	assert.ErrorIs(t, err, ErrBadAccessCode)

	_, err = NewFlow("12345a", InstantVerifier{})
	assert.ErrorIs(t, err, ErrBadAccessCode)
}

func TestFlowShortEntryNeverVerifies(t *testing.T) {
	f := newTestFlow(t, "428915")

	f.Enter("42891")
	assert.Equal(t, StateEntering, f.State())
	assert.Equal(t, OutcomePending, f.Outcome())
	assert.Equal(t, 5, f.EntryLen())
	assert.Equal(t, 0, f.Attempts())
}

func TestFlowCorrectCodeSucceeds(t *testing.T) {
	f := newTestFlow(t, "428915")

	started := 0
	f.OnSuccess(func() { started++ })

	f.Enter("428915")
	assert.Equal(t, StateSuccess, f.State())
	assert.Equal(t, OutcomeSuccess, f.Outcome())
	assert.Equal(t, 1, started)

	// success is terminal; more input does nothing and the callback never
	// fires again
	f.Enter("428915")
	assert.Equal(t, 1, started)
	assert.Equal(t, StateSuccess, f.State())
}

func TestFlowMismatchClearsEntryAndCountsAttempt(t *testing.T) {
	f := newTestFlow(t, "428915")

	var remaining []int
	f.OnMismatch(func(r int) { remaining = append(remaining, r) })

	f.Enter("111111")
	assert.Equal(t, StateEntering, f.State())
	assert.Equal(t, OutcomeFailure, f.Outcome())
	assert.Equal(t, 0, f.EntryLen())
	assert.True(t, f.Errored())
	assert.Equal(t, 1, f.Attempts())
	assert.Equal(t, []int{2}, remaining)
}

func TestFlowLocksAfterThreeMismatches(t *testing.T) {
	f := newTestFlow(t, "428915")

	locked := 0
	started := 0
	f.OnLocked(func() { locked++ })
	f.OnSuccess(func() { started++ })

	f.Enter("000000")
	f.Enter("111111")
	f.Enter("222222")

	assert.Equal(t, StateLocked, f.State())
	assert.Equal(t, OutcomeLocked, f.Outcome())
	assert.Equal(t, 1, locked)
	assert.Equal(t, 0, f.Remaining())

	// locked is terminal: even the right code is ignored
	f.Enter("428915")
	assert.Equal(t, StateLocked, f.State())
	assert.Equal(t, 0, started)
	assert.Equal(t, 3, f.Attempts())
}

func TestFlowDeleteLastOnEmptyIsNoop(t *testing.T) {
	f := newTestFlow(t, "428915")
	f.DeleteLast()
	assert.Equal(t, 0, f.EntryLen())
	assert.Equal(t, StateEntering, f.State())
}

func TestFlowDeleteThenCorrectDigitStillSucceeds(t *testing.T) {
	f := newTestFlow(t, "428915")

	started := 0
	f.OnSuccess(func() { started++ })

	f.Enter("42899")
	f.DeleteLast()
	assert.Equal(t, 4, f.EntryLen())
	f.Enter("15")
	assert.Equal(t, StateSuccess, f.State())
	assert.Equal(t, 1, started)
}

func TestFlowIgnoresInputWhileVerifying(t *testing.T) {
	f, err := NewFlow("428915", DelayedVerifier{Delay: 100 * time.Millisecond})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Enter("428915")
	}()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateVerifying, f.State())

	f.Append('9')
	assert.Equal(t, 6, f.EntryLen())

	wg.Wait()
	assert.Equal(t, StateSuccess, f.State())
}

func TestFlowDismissCancelsInFlightVerification(t *testing.T) {
	f, err := NewFlow("428915", DelayedVerifier{Delay: 200 * time.Millisecond})
	require.NoError(t, err)

	started := 0
	f.OnSuccess(func() { started++ })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Enter("428915")
	}()

	time.Sleep(30 * time.Millisecond)
	f.Dismiss()
	wg.Wait()

	assert.Equal(t, 0, started)
	assert.Equal(t, 0, f.Attempts())
	assert.NotEqual(t, StateSuccess, f.State())
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("428915", "428915"))
	assert.False(t, Match("428914", "428915"))
	assert.False(t, Match("", "428915"))
}

func TestDelayedVerifierHonoursCancellation(t *testing.T) {
	v := DelayedVerifier{Delay: time.Second}
	f, err := NewFlow("123456", v)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		f.Enter("123456")
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	f.Dismiss()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("verification did not unblock after dismissal")
	}
}
