// ABOUTME: Navigation guard middleware gating routes by declared role maps
// ABOUTME: Runs before the handler; a redirect decision never mounts the view

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/userportal/backend/guard"
	"github.com/userportal/backend/models"
)

// IdentityFunc returns the current logged-in identity, or nil.
type IdentityFunc func() *models.User

// Guard returns middleware that evaluates the route's permission map
// against the current identity before the handler runs. An allowed
// navigation passes through; a redirect decision answers 403 with the
// rewrite target for the SPA router, and the handler is never called.
func Guard(g *guard.Guard, identity IdentityFunc, perms models.RolePermissions) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user := identity()
			decision := g.Evaluate(perms, user)

			if decision.Allowed {
				next(w, r)
				return
			}

			var role any
			if user != nil {
				role = user.Role
			}
			slog.Warn("Navigation denied",
				"path", r.URL.Path,
				"method", r.Method,
				"role", role,
				"redirect", decision.RedirectTo,
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error:    "Access denied",
				Code:     http.StatusForbidden,
				Redirect: decision.RedirectTo,
			})
		}
	}
}
