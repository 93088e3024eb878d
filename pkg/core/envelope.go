package core

// Envelope is the uniform result shape returned for every call. It is
// either a success carrying the decoded response payload, or an error
// carrying an HTTP status code, an internal error id, or both absent
// markers. No other shape ever reaches the caller and no failure mode
// escapes as a raised error.
type Envelope struct {
	// OK discriminates success from error.
	OK bool `json:"ok"`
	// Payload is the decoded response body, present on success only.
	// The API's own envelope is carried verbatim.
	Payload map[string]any `json:"payload,omitempty"`
	// StatusCode is the HTTP status for API-declared errors. Zero
	// means no status applies (transport failure or malformed body).
	StatusCode int `json:"status_code,omitempty"`
	// ErrorID classifies failures that carry no HTTP status. A
	// malformed body is marked by the empty id together with a zero
	// StatusCode.
	ErrorID string `json:"error_id,omitempty"`
}

// Succeed wraps a decoded payload in a success envelope.
func Succeed(payload map[string]any) Envelope {
	return Envelope{OK: true, Payload: payload}
}

// Fail builds an error envelope. Pass statusCode 0 when no HTTP status
// applies.
func Fail(statusCode int, errorID string) Envelope {
	return Envelope{StatusCode: statusCode, ErrorID: errorID}
}

// IsSuccess reports whether the envelope carries a payload.
func (e Envelope) IsSuccess() bool {
	return e.OK
}

// IsError reports whether the envelope describes a failure.
func (e Envelope) IsError() bool {
	return !e.OK
}
