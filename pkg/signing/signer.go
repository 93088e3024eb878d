// Package signing authenticates canonical query strings with the
// shared-secret HMAC scheme.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the HMAC-SHA256 of message keyed by secret, rendered
// as lowercase hexadecimal. It is a pure function: identical inputs
// always produce the identical signature.
func Sign(message, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

// SignedQuery appends the signature parameter to a canonical query.
// The signed artifact is endpoint?query for GET and POST alike; the
// returned string is what goes on the wire (URL query or form body).
func SignedQuery(endpoint, query, secret string) string {
	return query + "&signature=" + Sign(endpoint+"?"+query, secret)
}
