// ABOUTME: Request/response models for the auth and user endpoints
// ABOUTME: Defines the JSON contracts consumed by the SPA view layer

package models

// LoginRequest carries credentials from the access form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports the result of a login attempt. A credential
// mismatch is a normal unsuccessful response, not a server fault.
type LoginResponse struct {
	Success bool        `json:"success"`
	User    *PublicUser `json:"user,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LogoutResponse tells the SPA to perform a full page reload so no stale
// in-memory references to the previous identity survive.
type LogoutResponse struct {
	Success bool `json:"success"`
	Reload  bool `json:"reload"`
}

// UserInfoResponse is the current session state read by the view layer.
type UserInfoResponse struct {
	Authenticated bool        `json:"authenticated"`
	Initialized   bool        `json:"initialized"`
	User          *PublicUser `json:"user,omitempty"`
}

// RegisterRequest carries the registration form fields. New registrations
// always get the guest role.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     int    `json:"code"`
	Redirect string `json:"redirect,omitempty"`
}
