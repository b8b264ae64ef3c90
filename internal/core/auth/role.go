package auth

import "errors"

// Role is the closed set of actor roles. Permissions are enforced server-side
// regardless of what the UI claims.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCook   Role = "cook"
	RoleClient Role = "client"
	RoleGuest  Role = "guest"
)

// ErrUnknownRole is returned when an external role value does not map to the
// internal enum.
var ErrUnknownRole = errors.New("unknown role")

// roleAliases is the total mapping from every external representation to the
// internal enum. The legacy backend used Spanish role names; both spellings
// are accepted, anything else is rejected rather than defaulted.
var roleAliases = map[string]Role{
	"admin":         RoleAdmin,
	"ADMINISTRADOR": RoleAdmin,
	"cook":          RoleCook,
	"COCINERO":      RoleCook,
	"client":        RoleClient,
	"CLIENTE":       RoleClient,
	"guest":         RoleGuest,
}

// ParseRole maps an external role string to the internal enum.
func ParseRole(s string) (Role, error) {
	role, ok := roleAliases[s]
	if !ok {
		return "", ErrUnknownRole
	}
	return role, nil
}

// CanAdvanceOrders reports whether the role may move orders through the
// lifecycle. Only kitchen staff and admins advance status.
func (r Role) CanAdvanceOrders() bool {
	return r == RoleCook || r == RoleAdmin
}

// CanViewAllOrders reports whether the role may list every order.
func (r Role) CanViewAllOrders() bool {
	return r == RoleCook || r == RoleAdmin
}

// Actor is the authenticated caller as resolved by the upstream
// authenticator. Guests have an empty ID.
type Actor struct {
	// ID is the account identifier; empty for guests.
	ID string
	// Role is the actor's resolved role.
	Role Role
}
