package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type WorkTypeRequest struct {
	WorkTypeName  string `json:"work_type_name" binding:"required"`
	WorkTypeCode  string `json:"work_type_code" binding:"required"`
	StandardHours string `json:"standard_hours" binding:"required"` // Decimal string, e.g. "8.00"
	Description   string `json:"description"`
	IsActive      bool   `json:"is_active"`
}

type WorkTypeResponse struct {
	ID            uint   `json:"id"`
	WorkTypeName  string `json:"work_type_name"`
	WorkTypeCode  string `json:"work_type_code"`
	StandardHours string `json:"standard_hours"`
	Description   string `json:"description"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

type WorkTypeService interface {
	ListWorkTypes(ctx context.Context, search string, page, limit int) ([]WorkTypeResponse, int64, error)
	GetWorkType(ctx context.Context, id uint) (*WorkTypeResponse, error)
	CreateWorkType(ctx context.Context, req WorkTypeRequest, actor string) (*WorkTypeResponse, error)
	UpdateWorkType(ctx context.Context, id uint, req WorkTypeRequest, actor string) (*WorkTypeResponse, error)
	DeleteWorkType(ctx context.Context, id uint, actor string) error
}

type workTypeService struct {
	repo  repository.WorkTypeRepository
	audit auditRecorder
}

func NewWorkTypeService(repo repository.WorkTypeRepository, db *gorm.DB) WorkTypeService {
	return &workTypeService{repo: repo, audit: newAuditRecorder(db)}
}

// --- Implementation ---

func (s *workTypeService) ListWorkTypes(ctx context.Context, search string, page, limit int) ([]WorkTypeResponse, int64, error) {
	workTypes, total, err := s.repo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch work types: %w", err)
	}

	res := make([]WorkTypeResponse, 0, len(workTypes))
	for _, wt := range workTypes {
		res = append(res, toWorkTypeResponse(wt))
	}
	return res, total, nil
}

func (s *workTypeService) GetWorkType(ctx context.Context, id uint) (*WorkTypeResponse, error) {
	workType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("work type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch work type: %w", err)
	}
	resp := toWorkTypeResponse(*workType)
	return &resp, nil
}

func (s *workTypeService) CreateWorkType(ctx context.Context, req WorkTypeRequest, actor string) (*WorkTypeResponse, error) {
	standardHours, err := parseStandardHours(req.StandardHours)
	if err != nil {
		return nil, err
	}

	workType := model.WorkType{
		WorkTypeName:  req.WorkTypeName,
		WorkTypeCode:  req.WorkTypeCode,
		StandardHours: standardHours,
		Description:   req.Description,
		IsActive:      req.IsActive,
	}

	if err := s.repo.Create(ctx, &workType); err != nil {
		return nil, fmt.Errorf("failed to create work type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "work_type", fmt.Sprint(workType.ID), req)

	resp := toWorkTypeResponse(workType)
	return &resp, nil
}

func (s *workTypeService) UpdateWorkType(ctx context.Context, id uint, req WorkTypeRequest, actor string) (*WorkTypeResponse, error) {
	workType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("work type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch work type: %w", err)
	}

	standardHours, err := parseStandardHours(req.StandardHours)
	if err != nil {
		return nil, err
	}

	workType.WorkTypeName = req.WorkTypeName
	workType.WorkTypeCode = req.WorkTypeCode
	workType.StandardHours = standardHours
	workType.Description = req.Description
	workType.IsActive = req.IsActive

	if err := s.repo.Update(ctx, workType); err != nil {
		return nil, fmt.Errorf("failed to update work type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "work_type", fmt.Sprint(workType.ID), req)

	resp := toWorkTypeResponse(*workType)
	return &resp, nil
}

func (s *workTypeService) DeleteWorkType(ctx context.Context, id uint, actor string) error {
	workType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("work type %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch work type: %w", err)
	}

	if err := s.repo.Delete(ctx, workType.ID); err != nil {
		return fmt.Errorf("failed to delete work type: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "work_type", fmt.Sprint(id), map[string]string{"work_type_name": workType.WorkTypeName})
	return nil
}

// --- Helpers ---

func parseStandardHours(value string) (decimal.Decimal, error) {
	hours, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: standard_hours must be a valid number", ErrValidation)
	}
	if hours.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: standard_hours must be positive", ErrValidation)
	}
	return hours, nil
}

func toWorkTypeResponse(wt model.WorkType) WorkTypeResponse {
	return WorkTypeResponse{
		ID:            wt.ID,
		WorkTypeName:  wt.WorkTypeName,
		WorkTypeCode:  wt.WorkTypeCode,
		StandardHours: wt.StandardHours.StringFixed(2),
		Description:   wt.Description,
		IsActive:      wt.IsActive,
		CreatedAt:     wt.CreatedAt.Format(time.RFC3339),
	}
}
