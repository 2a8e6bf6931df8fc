package core

import "strings"

// Role determines the authorization tier a user signs in under.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether the role is one of the enumerated set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// ParseRole normalizes uncontrolled role input into the closed
// enumeration. Unrecognized values are rejected rather than silently
// defaulted, so a typo'd role never signs in under a different tier.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// Status is the lifecycle state of a user account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Active reports whether the account may authenticate.
func (s Status) Active() bool {
	return s == StatusActive
}
