package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fitvision-backend/internal/models"
)

// TokenCodec issues and verifies short-lived access tokens. Tokens are
// stateless JWTs carrying only the subject email and an expiry; nothing is
// persisted and nothing can be revoked — they simply expire.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec for the given secret and algorithm name
// (HS256, HS384 or HS512). The secret, algorithm and TTL are fixed for the
// process lifetime.
func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC variant", algorithm)
	}
	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs an access token for the given subject email.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(c.method, jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(c.ttl).Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the subject of a valid token. A bad signature, malformed
// payload, missing subject, missing expiry or elapsed expiry all collapse
// into models.ErrExpiredOrInvalid — callers never learn which check failed.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", models.ErrExpiredOrInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.ErrExpiredOrInvalid
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", models.ErrExpiredOrInvalid
	}
	return sub, nil
}
