package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRememberToken(t *testing.T) {
	token, err := MakeRememberToken()
	require.NoError(t, err)

	n, err := NBytes(token)
	require.NoError(t, err)
	assert.Equal(t, RememberTokenBytes, n)

	other, err := MakeRememberToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHMACIsDeterministicPerKey(t *testing.T) {
	h := NewHMAC("secret-key")
	assert.Equal(t, h.Hash("token"), h.Hash("token"))
	assert.NotEqual(t, h.Hash("token"), h.Hash("other"))

	otherKey := NewHMAC("other-key")
	assert.NotEqual(t, h.Hash("token"), otherKey.Hash("token"))
}
