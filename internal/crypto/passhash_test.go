package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandBytes_SaltGeneration(t *testing.T) {
	t.Parallel()

	salt, err := RandBytes(16)
	require.NoError(t, err)
	require.Len(t, salt, 16)
	require.NotEqual(t, make([]byte, 16), salt)

	other, err := RandBytes(16)
	require.NoError(t, err)
	require.NotEqual(t, salt, other)
}

func TestHashPassword_SaltIsolation(t *testing.T) {
	t.Parallel()

	pw := []byte("senha-do-consultor")

	saltA, err := RandBytes(16)
	require.NoError(t, err)
	saltB, err := RandBytes(16)
	require.NoError(t, err)

	// Same credentials hash identically; a fresh salt changes everything.
	require.Equal(t, HashPassword(pw, saltA), HashPassword(pw, saltA))
	require.NotEqual(t, HashPassword(pw, saltA), HashPassword(pw, saltB))
	require.NotEqual(t, HashPassword([]byte("senha-errada"), saltA), HashPassword(pw, saltA))
}

func TestVerifyPassword_ConsoleLoginOutcomes(t *testing.T) {
	t.Parallel()

	salt, err := RandBytes(16)
	require.NoError(t, err)
	hash := HashPassword([]byte("senha-do-consultor"), salt)

	require.True(t, VerifyPassword([]byte("senha-do-consultor"), salt, hash))
	require.False(t, VerifyPassword([]byte("senha-do-consultor "), salt, hash))
	require.False(t, VerifyPassword(nil, salt, hash))
	require.False(t, VerifyPassword([]byte("senha-do-consultor"), []byte("outro-salt-16by!"), hash))
	require.False(t, VerifyPassword([]byte("senha-do-consultor"), salt, hash[:len(hash)-1]))
}
