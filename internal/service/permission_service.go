package service

import (
	"context"
	"errors"
	"fmt"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"gorm.io/gorm"
)

type PermissionRequest struct {
	Module      string `json:"module" binding:"required"`
	Action      string `json:"action" binding:"required,oneof=view add edit delete export import"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type PermissionResponse struct {
	ID          uint   `json:"id"`
	Module      string `json:"module"`
	Action      string `json:"action"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type PermissionService interface {
	ListPermissions(ctx context.Context, module string, page, limit int) ([]PermissionResponse, int64, error)
	GetPermission(ctx context.Context, id uint) (*PermissionResponse, error)
	CreatePermission(ctx context.Context, req PermissionRequest, actor string) (*PermissionResponse, error)
	UpdatePermission(ctx context.Context, id uint, req PermissionRequest, actor string) (*PermissionResponse, error)
	DeletePermission(ctx context.Context, id uint, actor string) error
}

type permissionService struct {
	repo  repository.PermissionRepository
	audit auditRecorder
}

func NewPermissionService(repo repository.PermissionRepository, db *gorm.DB) PermissionService {
	return &permissionService{repo: repo, audit: newAuditRecorder(db)}
}

func (s *permissionService) ListPermissions(ctx context.Context, module string, page, limit int) ([]PermissionResponse, int64, error) {
	permissions, total, err := s.repo.List(ctx, module, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	res := make([]PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		res = append(res, toPermissionResponse(p))
	}
	return res, total, nil
}

func (s *permissionService) GetPermission(ctx context.Context, id uint) (*PermissionResponse, error) {
	permission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("permission %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch permission: %w", err)
	}
	resp := toPermissionResponse(*permission)
	return &resp, nil
}

func (s *permissionService) CreatePermission(ctx context.Context, req PermissionRequest, actor string) (*PermissionResponse, error) {
	permission := model.Permission{
		Module:      req.Module,
		Action:      req.Action,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, &permission); err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "permission", fmt.Sprint(permission.ID), req)

	resp := toPermissionResponse(permission)
	return &resp, nil
}

func (s *permissionService) UpdatePermission(ctx context.Context, id uint, req PermissionRequest, actor string) (*PermissionResponse, error) {
	permission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("permission %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch permission: %w", err)
	}

	permission.Module = req.Module
	permission.Action = req.Action
	permission.Description = req.Description
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, permission); err != nil {
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "permission", fmt.Sprint(id), req)

	resp := toPermissionResponse(*permission)
	return &resp, nil
}

func (s *permissionService) DeletePermission(ctx context.Context, id uint, actor string) error {
	permission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("permission %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch permission: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "permission", fmt.Sprint(id), map[string]string{"code": permission.Code()})
	return nil
}

func toPermissionResponse(p model.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Module:      p.Module,
		Action:      p.Action,
		Code:        p.Code(),
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}
