package adminaccess

import "errors"

// CreateRoleDTO represents the request payload for creating a role
type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreateRoleDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}
	return nil
}

// UpdateRoleDTO represents the request payload for updating a role
type UpdateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto UpdateRoleDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// AttachPermissionDTO attaches an existing permission to a role
type AttachPermissionDTO struct {
	PermissionID string `json:"permission_id"`
}

func (dto AttachPermissionDTO) Validate() error {
	if dto.PermissionID == "" {
		return errors.New("permission_id is required")
	}
	return nil
}

// AssignRoleDTO assigns a role to a user
type AssignRoleDTO struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

func (dto AssignRoleDTO) Validate() error {
	if dto.UserID == "" {
		return errors.New("user_id is required")
	}
	if dto.RoleID == "" {
		return errors.New("role_id is required")
	}
	return nil
}
