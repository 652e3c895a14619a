package adminaccess

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/saasrevops/revenue-gateway/internal/transport"
	"github.com/saasrevops/revenue-gateway/pkg/logger"
)

type ServiceAPI interface {
	ListRoles(ctx context.Context, search string) ([]Role, error)
	GetRole(ctx context.Context, roleID string) (*Role, error)
	CreateRole(ctx context.Context, dto CreateRoleDTO) (*Role, error)
	UpdateRole(ctx context.Context, roleID string, dto UpdateRoleDTO) (*Role, error)
	DeleteRole(ctx context.Context, roleID string) error
	ListPermissions(ctx context.Context, resource, action string) ([]Permission, error)
	ListRolePermissions(ctx context.Context, roleID string) ([]RolePermission, error)
	AvailablePermissions(ctx context.Context, roleID string) ([]Permission, error)
	AttachPermission(ctx context.Context, roleID string, dto AttachPermissionDTO) (*RolePermission, error)
	DetachPermission(ctx context.Context, roleID, rolePermissionID string) error
	ListAssignments(ctx context.Context, userQuery string) ([]UserRoleAssignment, error)
	AssignRole(ctx context.Context, dto AssignRoleDTO) (*UserRoleAssignment, error)
	UnassignRole(ctx context.Context, assignmentID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	roles, err := h.Service.ListRoles(r.Context(), search)
	if err != nil {
		h.Logger.Error("ListRoles: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"roles":  roles,
		"search": search,
	})
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	role, err := h.Service.GetRole(r.Context(), roleID)
	if err != nil {
		h.Logger.Error("GetRole: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRole: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.CreateRole(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateRole: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateRole: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.UpdateRole(r.Context(), roleID, dto)
	if err != nil {
		h.Logger.Error("UpdateRole: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	if err := h.Service.DeleteRole(r.Context(), roleID); err != nil {
		h.Logger.Error("DeleteRole: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	resource := r.URL.Query().Get("resource")
	action := r.URL.Query().Get("action")

	permissions, err := h.Service.ListPermissions(r.Context(), resource, action)
	if err != nil {
		h.Logger.Error("ListPermissions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"permissions": permissions,
	})
}

func (h *Handler) ListRolePermissions(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	links, err := h.Service.ListRolePermissions(r.Context(), roleID)
	if err != nil {
		h.Logger.Error("ListRolePermissions: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"role_permissions": links,
	})
}

// AvailablePermissions serves the attach-permission picker: everything in
// the catalog that is not already attached to this role.
func (h *Handler) AvailablePermissions(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	permissions, err := h.Service.AvailablePermissions(r.Context(), roleID)
	if err != nil {
		h.Logger.Error("AvailablePermissions: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"permissions": permissions,
	})
}

func (h *Handler) AttachPermission(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")

	var dto AttachPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AttachPermission: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.Service.AttachPermission(r.Context(), roleID, dto)
	if err != nil {
		h.Logger.Error("AttachPermission: service error", "error", err, "role_id", roleID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, link)
}

func (h *Handler) DetachPermission(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "id")
	rolePermissionID := chi.URLParam(r, "permID")

	if err := h.Service.DetachPermission(r.Context(), roleID, rolePermissionID); err != nil {
		h.Logger.Error("DetachPermission: service error", "error", err, "role_id", roleID, "role_permission_id", rolePermissionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "detached"})
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	userQuery := r.URL.Query().Get("user")

	assignments, err := h.Service.ListAssignments(r.Context(), userQuery)
	if err != nil {
		h.Logger.Error("ListAssignments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"assignments": assignments,
		"user":        userQuery,
	})
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignRole: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.AssignRole(r.Context(), dto)
	if err != nil {
		h.Logger.Error("AssignRole: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, assignment)
}

func (h *Handler) UnassignRole(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")

	if err := h.Service.UnassignRole(r.Context(), assignmentID); err != nil {
		h.Logger.Error("UnassignRole: service error", "error", err, "assignment_id", assignmentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}
