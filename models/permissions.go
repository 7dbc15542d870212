// ABOUTME: Route permission declarations consumed by the navigation guard
// ABOUTME: Maps role tiers to the action tags declared for a route

package models

// Action tags the operations a role may perform on a route. The guard
// currently checks only role presence; the action lists are declared for
// the front-end to render per-action controls.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// RolePermissions is a route's declared role map. A nil map means the route
// is public. A non-nil map admits exactly the roles present as keys.
type RolePermissions map[Role][]Action
