package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"fitvision-backend/internal/middleware"
	"fitvision-backend/internal/models"
)

type UserHandler struct {
	users models.UserStore
}

func NewUserHandler(users models.UserStore) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

type OnboardingRequest struct {
	Age       int     `json:"age"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	Lifestyle string  `json:"lifestyle"`
	Goal      string  `json:"goal"`
}

// --- POST /users/onboarding ---

// CompleteOnboarding overwrites the profile fields and marks onboarding
// completed. Repeat calls overwrite again; there is no partial merge.
func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	profile := models.Profile{
		Name:      user.Profile.Name,
		Age:       &req.Age,
		Height:    &req.Height,
		Weight:    &req.Weight,
		Lifestyle: &req.Lifestyle,
		Goal:      &req.Goal,
	}
	if err := h.users.UpdateProfile(r.Context(), user.Email, profile); err != nil {
		log.Printf("Error updating profile for %s: %v", user.Email, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update profile"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- GET /users/me ---

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"email":                user.Email,
		"profile":              user.Profile,
		"onboarding_completed": user.OnboardingCompleted,
	})
}

// --- GET /dashboard ---

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Welcome to FitVision Dashboard",
		"user": map[string]string{
			"email": user.Email,
			"name":  user.Profile.Name,
		},
	})
}
