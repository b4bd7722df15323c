package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"gorm.io/gorm"
)

type RoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type AssignPermissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids" binding:"required"`
}

type PermissionSummary struct {
	ID     uint   `json:"id"`
	Module string `json:"module"`
	Action string `json:"action"`
	Code   string `json:"code"`
}

type RoleResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IsActive    bool                `json:"is_active"`
	Permissions []PermissionSummary `json:"permissions"`
	CreatedAt   string              `json:"created_at"`
}

type RoleService interface {
	ListRoles(ctx context.Context, search string, page, limit int) ([]RoleResponse, int64, error)
	GetRole(ctx context.Context, id uint) (*RoleResponse, error)
	CreateRole(ctx context.Context, req RoleRequest, actor string) (*RoleResponse, error)
	UpdateRole(ctx context.Context, id uint, req RoleRequest, actor string) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id uint, actor string) error
	AssignPermissions(ctx context.Context, id uint, req AssignPermissionsRequest, actor string) (*RoleResponse, error)
}

type roleService struct {
	repo           repository.RoleRepository
	permissionRepo repository.PermissionRepository
	txManager      repository.TransactionManager
	audit          auditRecorder
}

func NewRoleService(repo repository.RoleRepository, permissionRepo repository.PermissionRepository, txManager repository.TransactionManager, db *gorm.DB) RoleService {
	return &roleService{repo: repo, permissionRepo: permissionRepo, txManager: txManager, audit: newAuditRecorder(db)}
}

func (s *roleService) ListRoles(ctx context.Context, search string, page, limit int) ([]RoleResponse, int64, error) {
	roles, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		permissions, err := s.repo.ListPermissions(ctx, r.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch permissions for role %d: %w", r.ID, err)
		}
		res = append(res, toRoleResponse(r, permissions))
	}
	return res, total, nil
}

func (s *roleService) GetRole(ctx context.Context, id uint) (*RoleResponse, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	permissions, err := s.repo.ListPermissions(ctx, role.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role permissions: %w", err)
	}

	resp := toRoleResponse(*role, permissions)
	return &resp, nil
}

func (s *roleService) CreateRole(ctx context.Context, req RoleRequest, actor string) (*RoleResponse, error) {
	role := model.Role{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "role", fmt.Sprint(role.ID), req)

	return s.GetRole(ctx, role.ID)
}

func (s *roleService) UpdateRole(ctx context.Context, id uint, req RoleRequest, actor string) (*RoleResponse, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	role.Name = req.Name
	role.Description = req.Description
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "role", fmt.Sprint(id), req)

	return s.GetRole(ctx, id)
}

func (s *roleService) DeleteRole(ctx context.Context, id uint, actor string) error {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("role %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch role: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "role", fmt.Sprint(id), map[string]string{"name": role.Name})
	return nil
}

// AssignPermissions replaces the role's whole grant set in one transaction,
// same contract as role assignment on persons.
func (s *roleService) AssignPermissions(ctx context.Context, id uint, req AssignPermissionsRequest, actor string) (*RoleResponse, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("role %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	if len(req.PermissionIDs) > 0 {
		permissions, err := s.permissionRepo.FindByIDs(ctx, req.PermissionIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve permissions: %w", err)
		}
		if len(permissions) != len(uniqueIDs(req.PermissionIDs)) {
			return nil, fmt.Errorf("%w: one or more permission ids do not exist", ErrValidation)
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.ReplacePermissions(txCtx, role.ID, req.PermissionIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign permissions: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "role", fmt.Sprint(id), req)

	return s.GetRole(ctx, id)
}

func toRoleResponse(r model.Role, permissions []model.Permission) RoleResponse {
	summaries := make([]PermissionSummary, 0, len(permissions))
	for _, p := range permissions {
		summaries = append(summaries, PermissionSummary{
			ID:     p.ID,
			Module: p.Module,
			Action: p.Action,
			Code:   p.Code(),
		})
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		Permissions: summaries,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
