// Package adminaccess fronts the platform's role, permission and user-role
// assignment resources for the admin pages. All records are owned by the
// platform API; this module only shapes them for display and submits
// pre-validated payloads back.
package adminaccess

import (
	"time"

	"github.com/saasrevops/revenue-gateway/internal"
)

// Role is an opaque platform record. IsSystem marks built-in roles the
// admin UI must not delete.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
}

// Permission is a resource/action/effect triple, optionally narrowed to a
// single field.
type Permission struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Field    string `json:"field,omitempty"`
	Effect   string `json:"effect"`
}

// Permission effects.
const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

// RolePermission links a role to a permission, with the permission triple
// denormalized for display.
type RolePermission struct {
	ID           string `json:"id"`
	RoleID       string `json:"role_id"`
	PermissionID string `json:"permission_id"`
	Resource     string `json:"resource"`
	Action       string `json:"action"`
	Field        string `json:"field,omitempty"`
	Effect       string `json:"effect"`
}

// UserRoleAssignment links a user to a role, with the role name
// denormalized for display.
type UserRoleAssignment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrSystemRole = internal.NewConflictError("system roles cannot be deleted", internal.ErrCodeSystemRole)
)
