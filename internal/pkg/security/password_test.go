package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Passw0rd1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", hash)

	assert.True(t, VerifyPassword("Passw0rd1", hash))
	assert.False(t, VerifyPassword("passw0rd1", hash))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("Passw0rd1", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("Passw0rd1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, VerifyPassword("Passw0rd1", a))
	assert.True(t, VerifyPassword("Passw0rd1", b))
}

func TestHashPassword_OutOfRangeCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("x", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	assert.False(t, VerifyPassword("x", "not-a-bcrypt-hash"))
}
