package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; the production cost comes from config.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pass1234", hash, "hash must not equal the plaintext")

	assert.NoError(t, verifier.Compare(hash, "pass1234"))
	assert.Error(t, verifier.Compare(hash, "wrongpass"), "wrong password must not verify")
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(0)
	assert.Equal(t, DefaultBcryptCost, h.cost, "out-of-range cost should fall back to the default")

	h = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Equal(t, DefaultBcryptCost, h.cost)
}
