// ABOUTME: User CRUD handlers backing the admin table of the SPA
// ABOUTME: Every write goes to the remote directory and re-syncs the cache

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/userportal/backend/directory"
	"github.com/userportal/backend/models"
)

// ListUsers returns the cached directory, loading it first if needed.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.dir.EnsureLoaded(r.Context()); err != nil {
		h.writeError(w, "User directory unavailable", http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, http.StatusOK, h.dir.Users())
}

// CreateUser adds a user record. An omitted id is assigned past the highest
// cached one.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if user.Email == "" || user.Password == "" {
		h.writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if user.ID == 0 {
		if err := h.dir.EnsureLoaded(r.Context()); err != nil {
			h.writeError(w, "User directory unavailable", http.StatusServiceUnavailable)
			return
		}
		user.ID = h.dir.NextID()
	}

	if err := h.dir.Add(r.Context(), user); err != nil {
		slog.Error("User create failed", "user_id", user.ID, "error", err)
		h.writeError(w, "Failed to create user", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

// ReplaceUser PUTs the full record for the path id.
func (h *Handler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	h.mutateUser(w, r, h.dir.Replace)
}

// PatchUser PATCHes the record for the path id.
func (h *Handler) PatchUser(w http.ResponseWriter, r *http.Request) {
	h.mutateUser(w, r, h.dir.Patch)
}

// DeleteUser removes the record for the path id.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.dir.EnsureLoaded(r.Context()); err != nil {
		h.writeError(w, "User directory unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := h.dir.Delete(r.Context(), id); err != nil {
		h.writeDirectoryError(w, id, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) mutateUser(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, user models.User) error) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	user.ID = id

	// Mutations resolve the storage key through the cache.
	if err := h.dir.EnsureLoaded(r.Context()); err != nil {
		h.writeError(w, "User directory unavailable", http.StatusServiceUnavailable)
		return
	}

	if err := op(r.Context(), user); err != nil {
		h.writeDirectoryError(w, id, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.writeError(w, "Invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeDirectoryError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, directory.ErrNotFound) {
		h.writeError(w, "User not found", http.StatusNotFound)
		return
	}
	slog.Error("User mutation failed", "user_id", id, "error", err)
	h.writeError(w, "Failed to update user", http.StatusBadGateway)
}
