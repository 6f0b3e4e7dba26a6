package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt silently caps input at 72 bytes; we truncate explicitly so hash and
// verify agree on the exact bytes fed to the algorithm.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies user passwords with bcrypt. Each hash
// embeds its own random salt, so hashing the same password twice yields
// different strings that both verify.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// A cost of 0 selects bcrypt's default. Tests use bcrypt.MinCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(normalizePassword(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A malformed stored
// hash is treated as a mismatch, never an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), normalizePassword(password)) == nil
}

// normalizePassword truncates on raw bytes, not runes. A multi-byte sequence
// split at the boundary is fine: both hash and verify cut identically.
func normalizePassword(password string) []byte {
	pw := []byte(password)
	if len(pw) > maxPasswordBytes {
		return pw[:maxPasswordBytes]
	}
	return pw
}
