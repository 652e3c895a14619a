package adminaccess

import (
	"context"
	"log/slog"
	"strings"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/cache"
)

// Invalidation events published on successful mutations.
const (
	EventRoleCreated            = "admin.role.created"
	EventRoleUpdated            = "admin.role.updated"
	EventRoleDeleted            = "admin.role.deleted"
	EventRolePermissionsChanged = "admin.role_permissions.changed"
	EventAssignmentChanged      = "admin.assignment.changed"
)

// Cache key roots.
const (
	keyRoles           = "admin.roles"
	keyPermissions     = "admin.permissions"
	keyRolePermissions = "admin.role_permissions"
	keyAssignments     = "admin.user_roles"
)

// ClientAPI is the slice of the platform admin API the service needs.
type ClientAPI interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, roleID string) (*Role, error)
	CreateRole(ctx context.Context, dto CreateRoleDTO) (*Role, error)
	UpdateRole(ctx context.Context, roleID string, dto UpdateRoleDTO) (*Role, error)
	DeleteRole(ctx context.Context, roleID string) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	ListRolePermissions(ctx context.Context, roleID string) ([]RolePermission, error)
	AttachPermission(ctx context.Context, roleID string, dto AttachPermissionDTO) (*RolePermission, error)
	DetachPermission(ctx context.Context, roleID, rolePermissionID string) error
	ListAssignments(ctx context.Context) ([]UserRoleAssignment, error)
	AssignRole(ctx context.Context, dto AssignRoleDTO) (*UserRoleAssignment, error)
	UnassignRole(ctx context.Context, assignmentID string) error
}

type Service struct {
	client ClientAPI
	store  *cache.Store
	bus    *cache.Bus
	logger *slog.Logger
}

func NewService(client ClientAPI, store *cache.Store, bus *cache.Bus, logger *slog.Logger) *Service {
	s := &Service{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.registerInvalidations()
	return s
}

// registerInvalidations declares which cached reads each mutation stales.
// Deleting a role also stales the assignment lists: assignments denormalize
// the role name and the platform cascades the delete.
func (s *Service) registerInvalidations() {
	s.bus.Subscribe(EventRoleCreated, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyRoles, "list"))
	})
	s.bus.Subscribe(EventRoleUpdated, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyRoles, "list"))
		s.store.Invalidate(cache.Key(keyRoles, "detail", ev.ResourceID))
	})
	s.bus.Subscribe(EventRoleDeleted, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyRoles, "list"))
		s.store.Invalidate(cache.Key(keyRoles, "detail", ev.ResourceID))
		s.store.Invalidate(cache.Key(keyRolePermissions, "list", ev.ResourceID))
		s.store.InvalidatePrefix(cache.Key(keyAssignments, "list"))
	})
	s.bus.Subscribe(EventRolePermissionsChanged, func(ctx context.Context, ev cache.Event) {
		s.store.Invalidate(cache.Key(keyRolePermissions, "list", ev.ResourceID))
	})
	s.bus.Subscribe(EventAssignmentChanged, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyAssignments, "list"))
	})
}

// ListRoles returns all roles, narrowed by a case-insensitive substring
// match on the name when search is non-empty. The unfiltered list is what
// gets cached; filtering happens on the way out.
func (s *Service) ListRoles(ctx context.Context, search string) ([]Role, error) {
	roles, err := cache.Fetch(ctx, s.store, cache.Key(keyRoles, "list"), s.client.ListRoles)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return roles, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]Role, 0, len(roles))
	for _, role := range roles {
		if strings.Contains(strings.ToLower(role.Name), needle) {
			filtered = append(filtered, role)
		}
	}
	return filtered, nil
}

func (s *Service) GetRole(ctx context.Context, roleID string) (*Role, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyRoles, "detail", roleID), func(ctx context.Context) (*Role, error) {
		return s.client.GetRole(ctx, roleID)
	})
}

func (s *Service) CreateRole(ctx context.Context, dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	role, err := s.client.CreateRole(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventRoleCreated, ResourceID: role.ID})
	s.logger.Info("role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

func (s *Service) UpdateRole(ctx context.Context, roleID string, dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	role, err := s.client.UpdateRole(ctx, roleID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventRoleUpdated, ResourceID: roleID})
	return role, nil
}

// DeleteRole refuses system roles before any upstream call is made. The
// platform re-checks, but surfacing the refusal here keeps the admin flow
// from issuing a doomed delete.
func (s *Service) DeleteRole(ctx context.Context, roleID string) error {
	role, err := s.GetRole(ctx, roleID)
	if err != nil {
		return err
	}

	if role.IsSystem {
		s.logger.Warn("refused to delete system role", "role_id", roleID, "name", role.Name)
		return ErrSystemRole
	}

	if err := s.client.DeleteRole(ctx, roleID); err != nil {
		return err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventRoleDeleted, ResourceID: roleID})
	s.logger.Info("role deleted", "role_id", roleID)
	return nil
}

// ListPermissions returns the permission catalog, optionally narrowed by
// exact resource and action.
func (s *Service) ListPermissions(ctx context.Context, resource, action string) ([]Permission, error) {
	permissions, err := cache.Fetch(ctx, s.store, cache.Key(keyPermissions, "list"), s.client.ListPermissions)
	if err != nil {
		return nil, err
	}

	if resource == "" && action == "" {
		return permissions, nil
	}

	filtered := make([]Permission, 0, len(permissions))
	for _, perm := range permissions {
		if resource != "" && perm.Resource != resource {
			continue
		}
		if action != "" && perm.Action != action {
			continue
		}
		filtered = append(filtered, perm)
	}
	return filtered, nil
}

func (s *Service) ListRolePermissions(ctx context.Context, roleID string) ([]RolePermission, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyRolePermissions, "list", roleID), func(ctx context.Context) ([]RolePermission, error) {
		return s.client.ListRolePermissions(ctx, roleID)
	})
}

// AvailablePermissions derives the set of permissions not yet attached to
// the role: the full catalog minus the attached ones, by permission id.
func (s *Service) AvailablePermissions(ctx context.Context, roleID string) ([]Permission, error) {
	permissions, err := s.ListPermissions(ctx, "", "")
	if err != nil {
		return nil, err
	}

	attached, err := s.ListRolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}

	attachedIDs := make(map[string]bool, len(attached))
	for _, link := range attached {
		attachedIDs[link.PermissionID] = true
	}

	available := make([]Permission, 0, len(permissions))
	for _, perm := range permissions {
		if !attachedIDs[perm.ID] {
			available = append(available, perm)
		}
	}
	return available, nil
}

func (s *Service) AttachPermission(ctx context.Context, roleID string, dto AttachPermissionDTO) (*RolePermission, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	link, err := s.client.AttachPermission(ctx, roleID, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventRolePermissionsChanged, ResourceID: roleID})
	return link, nil
}

func (s *Service) DetachPermission(ctx context.Context, roleID, rolePermissionID string) error {
	if err := s.client.DetachPermission(ctx, roleID, rolePermissionID); err != nil {
		return err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventRolePermissionsChanged, ResourceID: roleID})
	return nil
}

// ListAssignments returns user-role assignments, narrowed by a substring
// match on the user id when userQuery is non-empty.
func (s *Service) ListAssignments(ctx context.Context, userQuery string) ([]UserRoleAssignment, error) {
	assignments, err := cache.Fetch(ctx, s.store, cache.Key(keyAssignments, "list"), s.client.ListAssignments)
	if err != nil {
		return nil, err
	}

	if userQuery == "" {
		return assignments, nil
	}

	filtered := make([]UserRoleAssignment, 0, len(assignments))
	for _, assignment := range assignments {
		if strings.Contains(assignment.UserID, userQuery) {
			filtered = append(filtered, assignment)
		}
	}
	return filtered, nil
}

func (s *Service) AssignRole(ctx context.Context, dto AssignRoleDTO) (*UserRoleAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	assignment, err := s.client.AssignRole(ctx, dto)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventAssignmentChanged, ResourceID: assignment.ID})
	s.logger.Info("role assigned", "assignment_id", assignment.ID, "user_id", dto.UserID, "role_id", dto.RoleID)
	return assignment, nil
}

func (s *Service) UnassignRole(ctx context.Context, assignmentID string) error {
	if err := s.client.UnassignRole(ctx, assignmentID); err != nil {
		return err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventAssignmentChanged, ResourceID: assignmentID})
	return nil
}
