package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type WorkProcessRequest struct {
	ProcessName string `json:"process_name" binding:"required"`
	ProcessCode string `json:"process_code" binding:"required"`
	WorkTypeID  uint   `json:"work_type_id"`                  // optional
	Coefficient string `json:"coefficient" binding:"required"` // Decimal string, e.g. "1.50"
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type WorkProcessResponse struct {
	ID           uint    `json:"id"`
	ProcessName  string  `json:"process_name"`
	ProcessCode  string  `json:"process_code"`
	WorkTypeID   *uint   `json:"work_type_id"`
	WorkTypeName string  `json:"work_type_name,omitempty"`
	Coefficient  string  `json:"coefficient"`
	WorkHours    *string `json:"work_hours"`
	Description  string  `json:"description"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

// --- Interface ---

type WorkProcessService interface {
	ListWorkProcesses(ctx context.Context, workTypeID uint, search string, page, limit int) ([]WorkProcessResponse, int64, error)
	GetWorkProcess(ctx context.Context, id uint) (*WorkProcessResponse, error)
	CreateWorkProcess(ctx context.Context, req WorkProcessRequest, actor string) (*WorkProcessResponse, error)
	UpdateWorkProcess(ctx context.Context, id uint, req WorkProcessRequest, actor string) (*WorkProcessResponse, error)
	DeleteWorkProcess(ctx context.Context, id uint, actor string) error
}

type workProcessService struct {
	repo         repository.WorkProcessRepository
	workTypeRepo repository.WorkTypeRepository
	logger       *zap.Logger
	audit        auditRecorder
}

func NewWorkProcessService(repo repository.WorkProcessRepository, workTypeRepo repository.WorkTypeRepository, logger *zap.Logger, db *gorm.DB) WorkProcessService {
	return &workProcessService{
		repo:         repo,
		workTypeRepo: workTypeRepo,
		logger:       logger,
		audit:        newAuditRecorder(db),
	}
}

// --- Implementation ---

func (s *workProcessService) ListWorkProcesses(ctx context.Context, workTypeID uint, search string, page, limit int) ([]WorkProcessResponse, int64, error) {
	processes, total, err := s.repo.List(ctx, workTypeID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch work processes: %w", err)
	}

	res := make([]WorkProcessResponse, 0, len(processes))
	for _, p := range processes {
		res = append(res, toWorkProcessResponse(p))
	}
	return res, total, nil
}

func (s *workProcessService) GetWorkProcess(ctx context.Context, id uint) (*WorkProcessResponse, error) {
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("work process %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch work process: %w", err)
	}
	resp := toWorkProcessResponse(*process)
	return &resp, nil
}

func (s *workProcessService) CreateWorkProcess(ctx context.Context, req WorkProcessRequest, actor string) (*WorkProcessResponse, error) {
	process := model.WorkProcess{
		ProcessName: req.ProcessName,
		ProcessCode: req.ProcessCode,
		Description: req.Description,
		IsActive:    req.IsActive,
	}

	if err := s.applyDerivedFields(ctx, &process, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &process); err != nil {
		return nil, fmt.Errorf("failed to create work process: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "work_process", fmt.Sprint(process.ID), req)

	return s.GetWorkProcess(ctx, process.ID)
}

func (s *workProcessService) UpdateWorkProcess(ctx context.Context, id uint, req WorkProcessRequest, actor string) (*WorkProcessResponse, error) {
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("work process %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch work process: %w", err)
	}

	process.ProcessName = req.ProcessName
	process.ProcessCode = req.ProcessCode
	process.Description = req.Description
	process.IsActive = req.IsActive
	process.WorkType = nil

	if err := s.applyDerivedFields(ctx, process, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to update work process: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "work_process", fmt.Sprint(process.ID), req)

	return s.GetWorkProcess(ctx, id)
}

func (s *workProcessService) DeleteWorkProcess(ctx context.Context, id uint, actor string) error {
	process, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("work process %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch work process: %w", err)
	}

	if err := s.repo.Delete(ctx, process.ID); err != nil {
		return fmt.Errorf("failed to delete work process: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "work_process", fmt.Sprint(id), map[string]string{"process_name": process.ProcessName})
	return nil
}

// applyDerivedFields parses the coefficient, resolves the optional work type
// and recomputes the derived work hours. DeriveWorkHours runs on every save
// so the stored figure never drifts from standard_hours × coefficient.
func (s *workProcessService) applyDerivedFields(ctx context.Context, process *model.WorkProcess, req WorkProcessRequest) error {
	coefficient, err := decimal.NewFromString(req.Coefficient)
	if err != nil {
		s.logger.Warn("rejecting work process with non-numeric coefficient",
			zap.String("process_name", req.ProcessName),
			zap.String("coefficient", req.Coefficient))
		return fmt.Errorf("%w: coefficient must be a valid number", ErrValidation)
	}
	process.Coefficient = coefficient

	if req.WorkTypeID == 0 {
		process.WorkTypeID = nil
		process.WorkHours = nil
		return nil
	}

	workType, err := s.workTypeRepo.FindByID(ctx, req.WorkTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: work type %d does not exist", ErrValidation, req.WorkTypeID)
		}
		return fmt.Errorf("failed to resolve work type: %w", err)
	}

	process.WorkTypeID = &workType.ID
	hours := DeriveWorkHours(workType.StandardHours, coefficient)
	process.WorkHours = &hours
	return nil
}

// DeriveWorkHours computes standard hours × coefficient with exact decimal
// arithmetic. Idempotent and side-effect free; the write path persists the
// result, never a nulled-out placeholder.
func DeriveWorkHours(standardHours, coefficient decimal.Decimal) decimal.Decimal {
	return standardHours.Mul(coefficient)
}

// --- Helpers ---

func toWorkProcessResponse(p model.WorkProcess) WorkProcessResponse {
	resp := WorkProcessResponse{
		ID:          p.ID,
		ProcessName: p.ProcessName,
		ProcessCode: p.ProcessCode,
		WorkTypeID:  p.WorkTypeID,
		Coefficient: p.Coefficient.StringFixed(2),
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if p.WorkType != nil {
		resp.WorkTypeName = p.WorkType.WorkTypeName
	}
	if p.WorkHours != nil {
		s := p.WorkHours.StringFixed(2)
		resp.WorkHours = &s
	}
	return resp
}
