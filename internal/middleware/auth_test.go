package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitvision-backend/internal/auth"
	"fitvision-backend/internal/middleware"
	"fitvision-backend/internal/models"
)

type fakeFinder struct {
	users map[string]*models.User
}

func (f *fakeFinder) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func newGate(t *testing.T) (*auth.TokenCodec, http.Handler) {
	t.Helper()
	codec, err := auth.NewTokenCodec("test-secret-key", "HS256", 15*time.Minute)
	require.NoError(t, err)

	finder := &fakeFinder{users: map[string]*models.User{
		"a@x.com": {Email: "a@x.com", Profile: models.Profile{Name: "Ann"}},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := middleware.GetUser(r.Context())
		require.NotNil(t, user)
		w.Write([]byte(user.Email))
	})
	return codec, middleware.Authenticate(codec, finder)(inner)
}

func TestAuthenticateWithHeader(t *testing.T) {
	codec, gate := newGate(t)
	token, err := codec.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", rec.Body.String())
}

func TestAuthenticateWithCookie(t *testing.T) {
	codec, gate := newGate(t)
	token, err := codec.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateMissingCredential(t *testing.T) {
	_, gate := newGate(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateForeignSecret(t *testing.T) {
	_, gate := newGate(t)

	other, err := auth.NewTokenCodec("another-secret", "HS256", 15*time.Minute)
	require.NoError(t, err)
	token, err := other.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	_, gate := newGate(t)

	// Same secret, but the token's expiry is already in the past.
	expired, err := auth.NewTokenCodec("test-secret-key", "HS256", -time.Minute)
	require.NoError(t, err)
	token, err := expired.Issue("a@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	codec, gate := newGate(t)

	// Token is valid but the record no longer exists.
	token, err := codec.Issue("deleted@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserOutsideGate(t *testing.T) {
	assert.Nil(t, middleware.GetUser(context.Background()))
}
