package domain

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// AuthenticatedUser is the identity resolved by the access policy before any
// service call.
type AuthenticatedUser struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (u AuthenticatedUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}
