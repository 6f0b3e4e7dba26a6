package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"fitvision-backend/internal/auth"
	"fitvision-backend/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// AccessTokenCookie is the cookie fallback for clients that cannot set an
// Authorization header.
const AccessTokenCookie = "access_token"

// UserFinder is the slice of the user store the gate needs to resolve a
// verified subject into a principal.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticate guards protected routes. It extracts the bearer credential,
// verifies it, loads the user record by the verified subject, and stores the
// principal in the request context for downstream handlers.
func Authenticate(codec *auth.TokenCodec, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, models.ErrUnauthenticated.Error())
				return
			}

			email, err := codec.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, models.ErrExpiredOrInvalid.Error())
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil {
				log.Printf("Error loading user %s: %v", email, err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			if user == nil {
				writeError(w, http.StatusUnauthorized, models.ErrUserNotFound.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the access credential from the Authorization header,
// falling back to the access_token cookie. Either transport is accepted.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// GetUser returns the authenticated principal, or nil outside a guarded route.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
