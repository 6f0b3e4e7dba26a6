package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHasher() *PasswordHasher {
	// MinCost keeps the tests fast.
	return NewPasswordHasher(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	hash1, err := h.Hash("secret123")
	require.NoError(t, err)
	hash2, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash1)
	// Salts differ, hashes differ, both verify.
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, h.Verify("secret123", hash1))
	assert.True(t, h.Verify("secret123", hash2))
}

func TestVerifyWrongPassword(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	assert.False(t, h.Verify("secret124", hash))
	assert.False(t, h.Verify("", hash))
}

func TestLongPasswordsTruncateConsistently(t *testing.T) {
	h := testHasher()

	prefix := strings.Repeat("a", maxPasswordBytes)
	long := prefix + "ignored-tail"

	hashLong, err := h.Hash(long)
	require.NoError(t, err)
	hashPrefix, err := h.Hash(prefix)
	require.NoError(t, err)

	// Everything past 72 bytes is invisible to the algorithm.
	assert.True(t, h.Verify(prefix, hashLong))
	assert.True(t, h.Verify(long, hashPrefix))
	assert.True(t, h.Verify(prefix+"different-tail", hashLong))
}

func TestTruncationSplitsMultibyteRuneWithoutError(t *testing.T) {
	h := testHasher()

	// 71 single-byte runes followed by a two-byte rune: the cut lands in
	// the middle of the rune.
	password := strings.Repeat("a", 71) + "é"
	require.Greater(t, len(password), maxPasswordBytes)

	hash, err := h.Hash(password)
	require.NoError(t, err)
	assert.True(t, h.Verify(password, hash))

	truncated := string([]byte(password)[:maxPasswordBytes])
	assert.True(t, h.Verify(truncated, hash))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := testHasher()

	assert.False(t, h.Verify("secret123", ""))
	assert.False(t, h.Verify("secret123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret123", "$2a$tampered"))
}

func TestDefaultCost(t *testing.T) {
	h := NewPasswordHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
