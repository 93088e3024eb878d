package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSucceed(t *testing.T) {
	payload := map[string]any{"success": true, "id": float64(5)}
	env := Succeed(payload)

	assert.True(t, env.IsSuccess())
	assert.False(t, env.IsError())
	assert.Equal(t, payload, env.Payload)
}

func TestFail(t *testing.T) {
	env := Fail(404, "")

	assert.True(t, env.IsError())
	assert.Equal(t, 404, env.StatusCode)
	assert.Empty(t, env.ErrorID)
	assert.Nil(t, env.Payload)
}

func TestFail_TransportClassesCarryNoStatus(t *testing.T) {
	for _, id := range []string{ErrIDConnect, ErrIDTransportGet, ErrIDTransportPost, ErrIDMalformedBody} {
		env := Fail(0, id)

		assert.True(t, env.IsError())
		assert.Equal(t, 0, env.StatusCode)
		assert.Equal(t, id, env.ErrorID)
	}
}
