package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"fitvision-backend/internal/mail"
	"fitvision-backend/internal/models"
)

type ContactHandler struct {
	contacts models.ContactStore
	notifier mail.Notifier
}

func NewContactHandler(contacts models.ContactStore, notifier mail.Notifier) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		notifier: notifier,
	}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// --- POST /api/contact ---

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, email and message are required"})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.contacts.Create(r.Context(), msg); err != nil {
		log.Printf("Error storing contact message: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Notify the admin in a background goroutine (non-blocking)
	go func() {
		if err := h.notifier.SendContact(context.Background(), req.Name, req.Email, req.Message); err != nil {
			log.Printf("Error sending contact email: %v", err)
		}
	}()

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
