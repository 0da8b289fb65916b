package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("P@ss1234")
	require.NoError(t, err)
	require.NotEqual(t, "P@ss1234", hash)

	assert.True(t, CheckPassword("P@ss1234", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("P@ss1234")
	require.NoError(t, err)
	h2, err := HashPassword("P@ss1234")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
