package model

import "time"

// Role is an authorization role carried in actor claims
type Role = string

// Roles, from most to least privileged
const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleVolunteer Role = "volunteer"
	RoleViewer    Role = "viewer"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleVolunteer, RoleViewer:
		return true
	}
	return false
}

// User represents an account that can authenticate against the service
type User struct {
	Key          string    `json:"_key,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	Role         Role      `json:"role"`
	OrgID        string    `json:"org_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a user with default values
func NewUser(email, role string) *User {
	return &User{
		Email:    email,
		Role:     role,
		IsActive: true,
	}
}

// Actor is the authenticated subject's identity plus derived authorization
// attributes. Produced by token verification, consumed read-only by the
// authorization policy.
type Actor struct {
	UID   string `json:"uid"`
	OrgID string `json:"org_id,omitempty"`
	Role  Role   `json:"role"`
}

// Actor derives the claims the policy consumes from a user record
func (u *User) Actor() Actor {
	return Actor{UID: u.Key, OrgID: u.OrgID, Role: u.Role}
}
