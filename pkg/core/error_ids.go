package core

import "errors"

// Internal error ids carried in error envelopes. The literal values
// are part of the wire-visible contract and must stay stable.
const (
	// ErrIDConnect marks a connection that could not be established,
	// including a connect-phase timeout.
	ErrIDConnect = "socket_timeout_exception"
	// ErrIDTransportGet marks an unclassified transport failure
	// during a GET exchange.
	ErrIDTransportGet = "g_1"
	// ErrIDTransportPost marks an unclassified transport failure
	// during a POST exchange.
	ErrIDTransportPost = "p_1"
	// ErrIDMalformedBody marks a response body that was not valid
	// JSON. The protocol uses the empty string for this class; it is
	// told apart from status-keyed errors by the zero StatusCode.
	ErrIDMalformedBody = ""
)

// Sentinel errors for construction-time and key management failures.
var (
	// ErrNilConfig is returned when a client is constructed without a config.
	ErrNilConfig = errors.New("nil config")
	// ErrNoAPIKey is returned when a key ring has no usable key.
	ErrNoAPIKey = errors.New("no available API key")
)
