// ABOUTME: HTTP handlers for the profile session backend
// ABOUTME: Provides JSON helpers and the health endpoint

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/userportal/backend/config"
	"github.com/userportal/backend/directory"
	"github.com/userportal/backend/models"
	"github.com/userportal/backend/session"
)

type Handler struct {
	cfg  *config.Config
	dir  *directory.Cache
	sess *session.Service
}

func NewHandler(cfg *config.Config, dir *directory.Cache, sess *session.Service) *Handler {
	return &Handler{
		cfg:  cfg,
		dir:  dir,
		sess: sess,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"initialized": h.sess.Initialized(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
