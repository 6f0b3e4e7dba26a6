package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fitvision-backend/internal/middleware"
	"fitvision-backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RefreshTokenCookie carries the opaque refresh token; middleware owns the
// access-token cookie name since it also reads it.
const RefreshTokenCookie = "refresh_token"

// CookieSettings are the deployment-dependent cookie attributes, injected
// from configuration at startup.
type CookieSettings struct {
	Secure        bool
	SameSite      http.SameSite
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

// SameSiteFromName maps a config value ("lax", "strict", "none") to the
// http constant, defaulting to Lax.
func SameSiteFromName(name string) http.SameSite {
	switch strings.ToLower(name) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func setAuthCookies(w http.ResponseWriter, pair *service.TokenPair, cs CookieSettings) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(cs.AccessMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: cs.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(cs.RefreshMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: cs.SameSite,
	})
}

func clearAuthCookies(w http.ResponseWriter, cs CookieSettings) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cs.Secure,
			SameSite: cs.SameSite,
		})
	}
}
