package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Opaque tokens back the refresh and password-reset flows. The raw token goes
// to the client; only its digest is stored, so a leaked database cannot be
// replayed against the API.

const opaqueTokenBytes = 48

// GenerateOpaqueToken returns a URL-safe token from 48 bytes of
// cryptographically secure randomness.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// DigestOpaqueToken computes the storage form of a token. This is a fast
// deterministic hash, not a password hash: digests are matched against
// storage on every refresh and reset request, and the token itself already
// carries more entropy than any password.
func DigestOpaqueToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// MatchesDigest reports whether token digests to the stored value.
func MatchesDigest(token, digest string) bool {
	computed := DigestOpaqueToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
