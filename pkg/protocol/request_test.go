package protocol

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nakula/pkg/canonical"
	"nakula/pkg/core"
	"nakula/pkg/signing"
)

func testCreds() core.Credentials {
	return core.Credentials{APIKey: "test-key", SecretKey: "test-secret"}
}

func TestBuild_InjectsKeyAndTimestamp(t *testing.T) {
	tree := canonical.FromParams(map[string]any{"id": 5})

	req := Build("/users", tree, testCreds(), 1700000000)

	idx := strings.LastIndex(req.Query, "&signature=")
	require.Greater(t, idx, 0)

	vals, err := url.ParseQuery(req.Query[:idx])
	require.NoError(t, err)
	assert.Equal(t, "test-key", vals.Get("api_key"))
	assert.Equal(t, "1700000000", vals.Get("request_timestamp"))
	assert.Equal(t, "5", vals.Get("id"))
}

func TestBuild_SignatureCoversEndpointAndQuery(t *testing.T) {
	tree := canonical.FromParams(map[string]any{"id": 5})

	req := Build("/users", tree, testCreds(), 1700000000)

	idx := strings.LastIndex(req.Query, "&signature=")
	require.Greater(t, idx, 0)
	base, sig := req.Query[:idx], req.Query[idx+len("&signature="):]

	assert.Equal(t, signing.Sign("/users?"+base, "test-secret"), sig)
}

func TestBuild_Deterministic(t *testing.T) {
	first := Build("/users", canonical.FromParams(map[string]any{"b": 1, "a": 2}), testCreds(), 1700000000)
	second := Build("/users", canonical.FromParams(map[string]any{"a": 2, "b": 1}), testCreds(), 1700000000)

	assert.Equal(t, first, second)
}

func TestBuild_QueryNeverContainsSecret(t *testing.T) {
	tree := canonical.FromParams(map[string]any{"comment": "hello world"})

	req := Build("/comments", tree, testCreds(), 1700000000)

	assert.NotContains(t, req.Query, "test-secret")
}

func TestBuild_EmptyParams(t *testing.T) {
	req := Build("/ping", canonical.FromParams(nil), testCreds(), 1700000000)

	assert.True(t, strings.HasPrefix(req.Query, "api_key=test-key&request_timestamp=1700000000&signature="))
	assert.Equal(t, "/ping", req.Path)
}
