// ABOUTME: Auth handlers for the SPA: login, logout, registration, session state
// ABOUTME: Translates session service results into the view layer's JSON contracts

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/userportal/backend/models"
)

// Login authenticates the submitted credentials against the user directory.
// A mismatch is a 401 with a validation message for the access form, not a
// server fault.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		h.writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user := h.sess.Login(r.Context(), req.Email, req.Password)
	if user == nil {
		h.writeJSON(w, http.StatusUnauthorized, models.LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	public := user.Public()
	h.writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		User:    &public,
	})
}

// Me returns the current identity and whether boot restoration has run.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	resp := models.UserInfoResponse{
		Initialized: h.sess.Initialized(),
	}

	if user := h.sess.CurrentUser(); user != nil {
		public := user.Public()
		resp.Authenticated = true
		resp.User = &public
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Logout tears the session down. The response instructs the SPA to do a
// full page reload so no stale references to the previous identity survive.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sess.Logout()

	h.writeJSON(w, http.StatusOK, models.LogoutResponse{
		Success: true,
		Reload:  true,
	})
}

// Register creates a new directory user with the guest role.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.writeError(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}

	if err := h.dir.EnsureLoaded(r.Context()); err != nil {
		h.writeError(w, "User directory unavailable", http.StatusServiceUnavailable)
		return
	}

	for _, existing := range h.dir.Users() {
		if existing.Email == req.Email {
			h.writeError(w, "Email already registered", http.StatusConflict)
			return
		}
	}

	user := models.User{
		ID:       h.dir.NextID(),
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleGuest,
	}

	if err := h.dir.Add(r.Context(), user); err != nil {
		slog.Error("Registration failed", "email", req.Email, "error", err)
		h.writeError(w, "Failed to create user", http.StatusBadGateway)
		return
	}

	public := user.Public()
	h.writeJSON(w, http.StatusCreated, models.LoginResponse{
		Success: true,
		User:    &public,
	})
}
