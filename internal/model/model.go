package model

// Package model contains domain models/data structures.
// Pure data, no database-specific dependencies or business logic; usable
// across layers (HTTP, service, storage) without coupling to persistence.

// UserRole is the role attribute of an authenticated principal.
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleTechnician UserRole = "technician"
	RoleAdmin      UserRole = "admin"
)

// Session is the read-only identity of the calling principal, derived from
// the bearer token issued by the external identity provider. It is passed
// explicitly into the services that need it; nothing is resolved implicitly.
type Session struct {
	UserID   string   `json:"user_id"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// IsTechnician reports whether the session belongs to a technician (capster).
func (s Session) IsTechnician() bool {
	return s.Role == RoleTechnician
}
