// ABOUTME: User identity record mirrored from the remote directory service
// ABOUTME: Defines the role tiers used for route authorization

package models

// Role classifies a user's privilege tier. The integer values are part of
// the remote service's data contract and of every route permission map.
type Role int

const (
	RoleAdmin  Role = 0
	RoleEditor Role = 1
	RoleGuest  Role = 2
)

// User is one record from the remote user directory. ID is the stable
// domain identifier; Key is the server-assigned storage handle for the
// record's location. The two identifier spaces are distinct.
// Password is stored and compared in plaintext by the remote service.
type User struct {
	ID       int64  `json:"id"`
	Key      string `json:"key,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// PublicUser is the client-facing projection of a User, without the password.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Public returns the user without credential material.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
