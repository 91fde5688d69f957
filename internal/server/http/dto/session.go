package dto

// SessionRequest carries the token issued by the upstream login.
type SessionRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserResponse describes the signed-in user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResponse is returned after a successful token exchange.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
