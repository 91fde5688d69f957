package model

// Role distinguishes back-office administrators from salesmen.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSalesman Role = "salesman"
)

// User is the authenticated principal of a session.
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// IsAdmin reports whether the user may manage every order.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
