package client

import "nakula/pkg/core"

// Future is the handle for one in-flight call. The caller's goroutine
// is never blocked while the exchange is outstanding.
type Future struct {
	done chan struct{}
	env  core.Envelope
}

// Done returns a channel that is closed once the envelope is ready.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call completes and returns the envelope.
// Cancelling the context passed at call time aborts the exchange and
// resolves the future with an error envelope, so Wait never blocks
// past cancellation.
func (f *Future) Wait() core.Envelope {
	<-f.done
	return f.env
}

// Resolved returns the envelope if the call has already completed.
func (f *Future) Resolved() (core.Envelope, bool) {
	select {
	case <-f.done:
		return f.env, true
	default:
		return core.Envelope{}, false
	}
}
