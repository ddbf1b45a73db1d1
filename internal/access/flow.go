// Package access implements the booking access-code verification flow: a
// bounded digit buffer that auto-submits when full, an attempt counter with a
// hard lockout, and a pluggable verifier for the code comparison itself.
package access

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNoAccessCode - the caller supplied no expected code. The code must
	// come from the booking session; there is no fallback constant.
	ErrNoAccessCode = errors.New("access: no expected code supplied")
	// ErrBadAccessCode - the expected code is not a 6-digit string.
	ErrBadAccessCode = errors.New("access: expected code is malformed")
)

// MaxAttempts - mismatches allowed before the flow locks.
const MaxAttempts = 3

type State int

const (
	StateEntering State = iota
	StateVerifying
	StateSuccess
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateVerifying:
		return "verifying"
	case StateSuccess:
		return "success"
	case StateLocked:
		return "locked"
	}
	return "unknown"
}

type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeLocked
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeLocked:
		return "locked"
	}
	return "unknown"
}

// Flow is one verification instance: empty buffer through Success or Locked.
// Success and Locked are terminal; the success callback fires exactly once.
type Flow struct {
	mu        sync.Mutex
	buf       *EntryBuffer
	expected  string
	verifier  Verifier
	ctx       context.Context
	cancel    context.CancelFunc
	state     State
	outcome   Outcome
	attempts  int
	dismissed bool
	fired     bool

	onSuccess  func()
	onMismatch func(remaining int)
	onLocked   func()

	pending string
}

// NewFlow builds a flow for the given expected code. An empty or malformed
// code is a configuration error, never silently defaulted.
func NewFlow(expected string, v Verifier) (*Flow, error) {
	if expected == "" {
		return nil, ErrNoAccessCode
	}
	if len(expected) != CodeLength {
		return nil, ErrBadAccessCode
	}
	for i := 0; i < len(expected); i++ {
		if expected[i] < '0' || expected[i] > '9' {
			return nil, ErrBadAccessCode
		}
	}
	if v == nil {
		v = DelayedVerifier{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	f := &Flow{
		buf:      NewEntryBuffer(CodeLength),
		expected: expected,
		verifier: v,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateEntering,
		outcome:  OutcomePending,
	}
	f.buf.OnFull(f.bufferFull)
	return f, nil
}

// OnSuccess registers the start-session collaborator.
func (f *Flow) OnSuccess(fn func()) { f.onSuccess = fn }

// OnMismatch receives the remaining attempt count after each failed entry.
func (f *Flow) OnMismatch(fn func(remaining int)) { f.onMismatch = fn }

// OnLocked fires once when the attempt threshold is reached.
func (f *Flow) OnLocked(fn func()) { f.onLocked = fn }

// bufferFull is the buffer's auto-submit event. Runs with f.mu held (it is
// only ever fired from inside Append).
func (f *Flow) bufferFull(code string) {
	f.state = StateVerifying
	f.pending = code
}

// Append feeds one digit into the flow. Ignored outside the Entering state,
// so no input lands while a verification is in flight and a locked flow
// accepts nothing at all. Filling the buffer triggers verification before
// Append returns.
func (f *Flow) Append(d byte) {
	f.mu.Lock()
	if f.dismissed || f.state != StateEntering {
		f.mu.Unlock()
		return
	}
	f.buf.Append(d)
	code := f.pending
	f.pending = ""
	f.mu.Unlock()
	if code != "" {
		f.resolve(code)
	}
}

// Enter feeds a whole code digit by digit.
func (f *Flow) Enter(code string) {
	for i := 0; i < len(code); i++ {
		f.Append(code[i])
	}
}

// DeleteLast removes the last entered digit; no-op when empty or when the
// flow is not accepting input.
func (f *Flow) DeleteLast() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dismissed || f.state != StateEntering {
		return
	}
	f.buf.DeleteLast()
}

// Dismiss abandons the flow and cancels any in-flight verification so stale
// callbacks never fire after the caller has navigated away.
func (f *Flow) Dismiss() {
	f.mu.Lock()
	f.dismissed = true
	f.mu.Unlock()
	f.cancel()
}

func (f *Flow) resolve(code string) {
	ok, err := f.verifier.Verify(f.ctx, code, f.expected)

	f.mu.Lock()
	if f.dismissed || f.state != StateVerifying {
		f.mu.Unlock()
		return
	}
	if err != nil {
		// cancelled verification: back to entry, no attempt consumed
		f.state = StateEntering
		f.buf.Reset()
		f.mu.Unlock()
		return
	}

	var cb func()
	if ok {
		f.state = StateSuccess
		f.outcome = OutcomeSuccess
		if f.onSuccess != nil && !f.fired {
			f.fired = true
			cb = f.onSuccess
		}
	} else {
		f.attempts++
		f.buf.Clear()
		if f.attempts >= MaxAttempts {
			f.state = StateLocked
			f.outcome = OutcomeLocked
			cb = f.onLocked
		} else {
			f.state = StateEntering
			f.outcome = OutcomeFailure
			remaining := MaxAttempts - f.attempts
			if f.onMismatch != nil {
				mcb := f.onMismatch
				cb = func() { mcb(remaining) }
			}
		}
	}
	f.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Outcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *Flow) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// Remaining - attempts left before lockout.
func (f *Flow) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r := MaxAttempts - f.attempts; r > 0 {
		return r
	}
	return 0
}

func (f *Flow) EntryLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.Len()
}

func (f *Flow) Errored() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.Errored()
}
