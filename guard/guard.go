// ABOUTME: Navigation guard deciding route access from role presence
// ABOUTME: Pure evaluation: every input yields exactly Allow or Redirect

package guard

import (
	"github.com/userportal/backend/models"
)

// Decision is the guard's verdict for one attempted navigation. A redirect
// rewrites the destination outright; the originally requested path is not
// queued for replay after login.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard evaluates route permission maps against the current identity.
type Guard struct {
	accessRoute string
}

// New creates a guard that redirects forbidden navigations to accessRoute.
func New(accessRoute string) *Guard {
	return &Guard{accessRoute: accessRoute}
}

// Evaluate decides access for a route. A route with no permission map is
// public. A mapped route requires an identity whose role appears as a key
// of the map; the per-role action lists are not consulted. Never panics and
// never returns a third outcome.
func (g *Guard) Evaluate(perms models.RolePermissions, user *models.User) Decision {
	if perms == nil {
		return Decision{Allowed: true}
	}

	if user == nil {
		return Decision{RedirectTo: g.accessRoute}
	}

	if _, ok := perms[user.Role]; ok {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: g.accessRoute}
}
