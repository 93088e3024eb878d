// Package protocol implements the request signing pipeline and the
// response normalization rules of the API wire protocol.
package protocol

import (
	"nakula/pkg/canonical"
	"nakula/pkg/core"
	"nakula/pkg/signing"
)

// SignedRequest is the transmit-ready form of one call: the endpoint
// path plus the canonical query with its signature appended. The query
// is used verbatim as the URL query for GET and as the form body for
// POST.
type SignedRequest struct {
	Path  string
	Query string
}

// Build injects api_key and request_timestamp into the parameter tree,
// canonicalizes it, and signs the result. Build takes ownership of the
// tree; callers pass a fresh copy (FromParams already copies).
func Build(endpoint string, params canonical.Node, creds core.Credentials, timestamp int64) SignedRequest {
	params.Set("api_key", canonical.String(creds.APIKey))
	params.Set("request_timestamp", canonical.Int(timestamp))

	query := canonical.Encode(params)
	return SignedRequest{
		Path:  endpoint,
		Query: signing.SignedQuery(endpoint, query, creds.SecretKey),
	}
}
