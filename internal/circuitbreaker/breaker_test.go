package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(timeout time.Duration) *Breaker {
	return New(Config{
		FailThreshold:    2,
		SuccessThreshold: 2,
		Timeout:          timeout,
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}

func TestBreaker_StartsClosed(t *testing.T) {
	b := newTestBreaker(time.Second)

	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_OpensAtFailThreshold(t *testing.T) {
	b := newTestBreaker(time.Second)

	b.Record(false)
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 1, b.Failures())

	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := New(Config{FailThreshold: 5, SuccessThreshold: 2, Timeout: time.Second})

	b.Record(false)
	b.Record(false)
	assert.Equal(t, 2, b.Failures())

	b.Record(true)
	assert.Equal(t, 0, b.Failures())
}

func TestBreaker_ProbesAfterTimeout(t *testing.T) {
	b := newTestBreaker(50 * time.Millisecond)

	b.Record(false)
	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	time.Sleep(80 * time.Millisecond)

	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_ClosesAfterSuccessThreshold(t *testing.T) {
	b := newTestBreaker(50 * time.Millisecond)

	b.Record(false)
	b.Record(false)
	time.Sleep(80 * time.Millisecond)

	b.Record(true)
	assert.Equal(t, StateHalfOpen, b.State())

	b.Record(true)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := newTestBreaker(50 * time.Millisecond)

	b.Record(false)
	b.Record(false)
	time.Sleep(80 * time.Millisecond)
	assert.True(t, b.Allow())

	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_Reset(t *testing.T) {
	b := newTestBreaker(time.Second)

	b.Record(false)
	b.Record(false)
	assert.Equal(t, StateOpen, b.State())

	b.Reset()

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 0, b.Failures())
	assert.Equal(t, 0, b.Successes())
	assert.True(t, b.Allow())
}
