package adminaccess

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

// Client wraps the platform's admin endpoints. Each method is one HTTP call.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.api.Get(ctx, "/admin/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) GetRole(ctx context.Context, roleID string) (*Role, error) {
	var role Role
	if err := c.api.Get(ctx, "/admin/roles/"+url.PathEscape(roleID), &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) CreateRole(ctx context.Context, dto CreateRoleDTO) (*Role, error) {
	var role Role
	if err := c.api.Post(ctx, "/admin/roles", dto, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) UpdateRole(ctx context.Context, roleID string, dto UpdateRoleDTO) (*Role, error) {
	var role Role
	if err := c.api.Patch(ctx, "/admin/roles/"+url.PathEscape(roleID), dto, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) DeleteRole(ctx context.Context, roleID string) error {
	return c.api.Delete(ctx, "/admin/roles/"+url.PathEscape(roleID))
}

func (c *Client) ListPermissions(ctx context.Context) ([]Permission, error) {
	var permissions []Permission
	if err := c.api.Get(ctx, "/admin/permissions", &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

func (c *Client) ListRolePermissions(ctx context.Context, roleID string) ([]RolePermission, error) {
	var links []RolePermission
	path := fmt.Sprintf("/admin/roles/%s/permissions", url.PathEscape(roleID))
	if err := c.api.Get(ctx, path, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) AttachPermission(ctx context.Context, roleID string, dto AttachPermissionDTO) (*RolePermission, error) {
	var link RolePermission
	path := fmt.Sprintf("/admin/roles/%s/permissions", url.PathEscape(roleID))
	if err := c.api.Post(ctx, path, dto, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *Client) DetachPermission(ctx context.Context, roleID, rolePermissionID string) error {
	path := fmt.Sprintf("/admin/roles/%s/permissions/%s", url.PathEscape(roleID), url.PathEscape(rolePermissionID))
	return c.api.Delete(ctx, path)
}

func (c *Client) ListAssignments(ctx context.Context) ([]UserRoleAssignment, error) {
	var assignments []UserRoleAssignment
	if err := c.api.Get(ctx, "/admin/user-roles", &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (c *Client) AssignRole(ctx context.Context, dto AssignRoleDTO) (*UserRoleAssignment, error) {
	var assignment UserRoleAssignment
	if err := c.api.Post(ctx, "/admin/user-roles", dto, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (c *Client) UnassignRole(ctx context.Context, assignmentID string) error {
	return c.api.Delete(ctx, "/admin/user-roles/"+url.PathEscape(assignmentID))
}
