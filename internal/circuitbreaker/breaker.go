// Package circuitbreaker guards the transport against hammering an
// endpoint that is persistently failing. An open breaker is reported
// to callers through the normal error envelope, never as a raised
// error.
package circuitbreaker

import (
	"sync"
	"time"
)

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config sets the breaker thresholds.
type Config struct {
	// FailThreshold is the number of consecutive failures that opens
	// the breaker.
	FailThreshold int
	// SuccessThreshold is the number of consecutive half-open
	// successes that closes it again.
	SuccessThreshold int
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration
}

// Breaker is a three-state circuit breaker. Safe for concurrent use.
type Breaker struct {
	mu          sync.Mutex
	cfg         Config
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// New creates a closed breaker with the given thresholds.
func New(cfg Config) *Breaker {
	return &Breaker{cfg: cfg, state: StateClosed}
}

// Allow reports whether a call may proceed. An open breaker whose
// timeout has elapsed moves to half-open and lets one probe through.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.lastFailure) >= b.cfg.Timeout {
			b.state = StateHalfOpen
			b.successes = 0
			return true
		}
		return false
	}
	return true
}

// Record feeds the outcome of a call back into the breaker.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailThreshold {
			b.trip()
		}
	case StateOpen:
		// A result can arrive while open when the call started before
		// the trip. Once the timeout has elapsed it counts as a probe.
		if time.Since(b.lastFailure) < b.cfg.Timeout {
			return
		}
		b.state = StateHalfOpen
		b.successes = 0
		b.recordHalfOpen(success)
	case StateHalfOpen:
		b.recordHalfOpen(success)
	}
}

func (b *Breaker) recordHalfOpen(success bool) {
	if !success {
		b.trip()
		return
	}
	b.successes++
	if b.successes >= b.cfg.SuccessThreshold {
		b.state = StateClosed
		b.failures = 0
		b.successes = 0
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.successes = 0
	b.lastFailure = time.Now()
}

// State returns the current breaker position.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset forces the breaker closed and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

// Failures returns the consecutive failure count while closed.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Successes returns the consecutive success count while half-open.
func (b *Breaker) Successes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.successes
}
