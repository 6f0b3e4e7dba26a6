package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fitvision-backend/internal/auth"
	"fitvision-backend/internal/middleware"
	"fitvision-backend/internal/models"
	"fitvision-backend/internal/service"
)

type AuthHandler struct {
	sessions *service.SessionManager
	resets   *service.PasswordResetFlow
	codec    *auth.TokenCodec
	cookies  CookieSettings
}

func NewAuthHandler(sessions *service.SessionManager, resets *service.PasswordResetFlow, codec *auth.TokenCodec, cookies CookieSettings) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		resets:   resets,
		codec:    codec,
		cookies:  cookies,
	}
}

// --- Request types ---

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// --- POST /auth/signup ---

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, email and password are required"})
		return
	}

	pair, err := h.sessions.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, models.ErrEmailAlreadyRegistered) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": models.ErrEmailAlreadyRegistered.Error()})
			return
		}
		log.Printf("Error signing up %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	setAuthCookies(w, pair, h.cookies)
	writeJSON(w, http.StatusCreated, map[string]string{"access_token": pair.AccessToken})
}

// --- POST /auth/login ---

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	pair, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": models.ErrInvalidCredentials.Error()})
			return
		}
		log.Printf("Error logging in %s: %v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	setAuthCookies(w, pair, h.cookies)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": pair.AccessToken})
}

// --- POST /auth/refresh ---

// Refresh accepts the refresh token from the refresh_token cookie or, for
// non-browser clients, from the request body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		presented = c.Value
	}
	if presented == "" {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.sessions.Refresh(r.Context(), presented)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingRefreshToken):
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": models.ErrMissingRefreshToken.Error()})
		case errors.Is(err, models.ErrInvalidRefreshToken):
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": models.ErrInvalidRefreshToken.Error()})
		default:
			log.Printf("Error refreshing session: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	setAuthCookies(w, pair, h.cookies)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": pair.AccessToken})
}

// --- POST /auth/logout ---

// Logout clears the auth cookies and, when a valid access token is
// presented, supersedes the stored refresh token. It succeeds either way:
// an expired access token must not prevent logging out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.BearerToken(r); token != "" {
		if email, err := h.codec.Verify(token); err == nil {
			if err := h.sessions.Logout(r.Context(), email); err != nil {
				log.Printf("Error clearing refresh token for %s: %v", email, err)
			}
		}
	}

	clearAuthCookies(w, h.cookies)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- POST /auth/forgot-password ---

// ForgotPassword always answers {"success": true}; whether the email is
// registered must not be observable from the response.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if err := h.resets.RequestReset(r.Context(), req.Email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- POST /auth/reset-password ---

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Token == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token and password are required"})
		return
	}

	if err := h.resets.CompleteReset(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, models.ErrInvalidOrExpiredToken) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": models.ErrInvalidOrExpiredToken.Error()})
			return
		}
		log.Printf("Error resetting password: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
