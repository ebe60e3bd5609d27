package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(4) // low cost keeps the test fast

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password1", hash)
}

func TestBcryptHasher_Hash_SaltedOutputsDiffer(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("password1")
	require.NoError(t, err)
	second, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("password1", hash))
	assert.False(t, hasher.Verify("wrong-password", hash))
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("password1", hash))
}
