// ABOUTME: Declarative route table mapping paths to handlers and role maps
// ABOUTME: A nil Roles map marks a public route; maps are checked by the guard

package handlers

import (
	"net/http"

	"github.com/userportal/backend/models"
)

// Route describes one API endpoint: its method pattern, the handler, and
// the role map the navigation guard evaluates before the handler runs.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
	Roles   models.RolePermissions
}

// Routes returns the full endpoint table. Auth and health endpoints are
// public; the user table requires a mapped role, with mutations restricted
// to administrators.
func (h *Handler) Routes() []Route {
	usersRead := models.RolePermissions{
		models.RoleAdmin:  {models.ActionRead, models.ActionCreate, models.ActionUpdate, models.ActionDelete},
		models.RoleEditor: {models.ActionRead, models.ActionCreate},
	}
	usersWrite := models.RolePermissions{
		models.RoleAdmin: {models.ActionRead, models.ActionCreate, models.ActionUpdate, models.ActionDelete},
	}

	return []Route{
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodPost, Path: "/api/v1/auth/login", Handler: h.Login},
		{Method: http.MethodPost, Path: "/api/v1/auth/logout", Handler: h.Logout},
		{Method: http.MethodGet, Path: "/api/v1/auth/me", Handler: h.Me},
		{Method: http.MethodPost, Path: "/api/v1/auth/register", Handler: h.Register},
		{Method: http.MethodGet, Path: "/api/v1/users", Handler: h.ListUsers, Roles: usersRead},
		{Method: http.MethodPost, Path: "/api/v1/users", Handler: h.CreateUser, Roles: usersRead},
		{Method: http.MethodPut, Path: "/api/v1/users/{id}", Handler: h.ReplaceUser, Roles: usersWrite},
		{Method: http.MethodPatch, Path: "/api/v1/users/{id}", Handler: h.PatchUser, Roles: usersWrite},
		{Method: http.MethodDelete, Path: "/api/v1/users/{id}", Handler: h.DeleteUser, Roles: usersWrite},
	}
}
