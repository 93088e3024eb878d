package protocol

import (
	"net/http"

	"github.com/bytedance/sonic"

	"nakula/internal/transport"
	"nakula/pkg/core"
)

// Normalizer collapses every raw HTTP outcome into a core.Envelope.
type Normalizer struct {
	successField string
}

// NewNormalizer creates a normalizer that recognizes successField as
// the top-level marker of an API-originated payload.
func NewNormalizer(successField string) *Normalizer {
	return &Normalizer{successField: successField}
}

// Normalize maps one raw outcome to the uniform envelope. It is total:
// every combination of result and error terminates in an envelope and
// nothing is raised past this boundary. The rules apply in order:
// connect failure, other transport failure keyed by verb, malformed
// body, marked success, status-keyed error.
func (n *Normalizer) Normalize(method string, res *transport.Result, err error) core.Envelope {
	if err != nil {
		if transport.IsConnectFailure(err) {
			return core.Fail(0, core.ErrIDConnect)
		}
		return core.Fail(0, TransportErrorID(method))
	}

	var decoded any
	if uerr := sonic.Unmarshal(res.Body, &decoded); uerr != nil {
		return core.Fail(0, core.ErrIDMalformedBody)
	}

	if payload, ok := decoded.(map[string]any); ok {
		if _, marked := payload[n.successField]; marked {
			return core.Succeed(payload)
		}
	}

	return core.Fail(res.StatusCode, "")
}

// TransportErrorID returns the verb-keyed id for an unclassified
// transport failure.
func TransportErrorID(method string) string {
	if method == http.MethodPost {
		return core.ErrIDTransportPost
	}
	return core.ErrIDTransportGet
}
