package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"shipyard/internal/model"
	"shipyard/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type ProcessFlowRequest struct {
	ShipTypeID       uint   `json:"ship_type_id" binding:"required"`
	TypicalSectionID uint   `json:"typical_section_id" binding:"required"`
	FlowName         string `json:"flow_name" binding:"required"`
	Description      string `json:"description"`
}

type FlowStepRequest struct {
	StepName            string `json:"step_name" binding:"required"`
	WorkProcessID       uint   `json:"work_process_id" binding:"required"`
	StepOrder           int    `json:"step_order" binding:"required,min=1"`
	ParallelGroup       int    `json:"parallel_group" binding:"min=0"`
	EstimatedHours      string `json:"estimated_hours"` // empty = derive from work process
	Description         string `json:"description"`
	PrerequisiteStepIDs []uint `json:"prerequisite_step_ids"`
}

// BulkStepRow carries one row of a whole-list step replacement. Numeric
// fields arrive as strings because the rows originate from a tabular editor;
// rows that fail the name/process/order checks are dropped, not rejected.
type BulkStepRow struct {
	StepName           string   `json:"step_name"`
	WorkProcessID      uint     `json:"work_process_id"`
	StepOrder          string   `json:"step_order"`
	ParallelGroup      string   `json:"parallel_group"`
	EstimatedHours     string   `json:"estimated_hours"`
	Description        string   `json:"description"`
	PrerequisiteOrders []string `json:"prerequisite_orders"` // step_order values of sibling rows
}

type ReplaceStepsRequest struct {
	Steps []BulkStepRow `json:"steps" binding:"required"`
}

type FlowStepResponse struct {
	ID                 uint   `json:"id"`
	StepName           string `json:"step_name"`
	WorkProcessID      uint   `json:"work_process_id"`
	WorkProcessName    string `json:"work_process_name,omitempty"`
	StepOrder          int    `json:"step_order"`
	ParallelGroup      int    `json:"parallel_group"`
	EstimatedHours     string `json:"estimated_hours"`
	Description        string `json:"description"`
	PrerequisiteStepIDs []uint `json:"prerequisite_step_ids"`
}

type ProcessFlowResponse struct {
	ID                  uint               `json:"id"`
	ShipTypeID          uint               `json:"ship_type_id"`
	ShipTypeName        string             `json:"ship_type_name,omitempty"`
	TypicalSectionID    uint               `json:"typical_section_id"`
	TypicalSectionName  string             `json:"typical_section_name,omitempty"`
	FlowName            string             `json:"flow_name"`
	Description         string             `json:"description"`
	EstimatedTotalHours string             `json:"estimated_total_hours"`
	IsActive            bool               `json:"is_active"`
	Steps               []FlowStepResponse `json:"steps,omitempty"`
	CreatedAt           string             `json:"created_at"`
}

// --- Interface ---

type ProcessFlowService interface {
	ListFlows(ctx context.Context, shipTypeID, typicalSectionID uint, search string, includeInactive bool, page, limit int) ([]ProcessFlowResponse, int64, error)
	GetFlowDetail(ctx context.Context, id uint) (*ProcessFlowResponse, error)
	CreateFlow(ctx context.Context, req ProcessFlowRequest, actor string) (*ProcessFlowResponse, error)
	UpdateFlow(ctx context.Context, id uint, req ProcessFlowRequest, actor string) (*ProcessFlowResponse, error)
	DeactivateFlow(ctx context.Context, id uint, actor string) error
	ReplaceSteps(ctx context.Context, flowID uint, req ReplaceStepsRequest, actor string) (*ProcessFlowResponse, error)
	AddStep(ctx context.Context, flowID uint, req FlowStepRequest, actor string) (*ProcessFlowResponse, error)
	UpdateStep(ctx context.Context, stepID uint, req FlowStepRequest, actor string) (*ProcessFlowResponse, error)
	DeleteStep(ctx context.Context, stepID uint, actor string) error
}

type processFlowService struct {
	repo            repository.ProcessFlowRepository
	workProcessRepo repository.WorkProcessRepository
	shipTypeRepo    repository.ShipTypeRepository
	sectionRepo     repository.TypicalSectionRepository
	txManager       repository.TransactionManager
	broadcaster     EventBroadcaster
	logger          *zap.Logger
	audit           auditRecorder
}

func NewProcessFlowService(
	repo repository.ProcessFlowRepository,
	workProcessRepo repository.WorkProcessRepository,
	shipTypeRepo repository.ShipTypeRepository,
	sectionRepo repository.TypicalSectionRepository,
	txManager repository.TransactionManager,
	broadcaster EventBroadcaster,
	logger *zap.Logger,
	db *gorm.DB,
) ProcessFlowService {
	return &processFlowService{
		repo:            repo,
		workProcessRepo: workProcessRepo,
		shipTypeRepo:    shipTypeRepo,
		sectionRepo:     sectionRepo,
		txManager:       txManager,
		broadcaster:     broadcaster,
		logger:          logger,
		audit:           newAuditRecorder(db),
	}
}

// --- Flow CRUD ---

func (s *processFlowService) ListFlows(ctx context.Context, shipTypeID, typicalSectionID uint, search string, includeInactive bool, page, limit int) ([]ProcessFlowResponse, int64, error) {
	flows, total, err := s.repo.List(ctx, shipTypeID, typicalSectionID, search, includeInactive, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch process flows: %w", err)
	}

	res := make([]ProcessFlowResponse, 0, len(flows))
	for _, f := range flows {
		res = append(res, toProcessFlowResponse(f, false))
	}
	return res, total, nil
}

func (s *processFlowService) GetFlowDetail(ctx context.Context, id uint) (*ProcessFlowResponse, error) {
	flow, err := s.repo.FindByIDWithSteps(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process flow %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch process flow: %w", err)
	}
	resp := toProcessFlowResponse(*flow, true)
	return &resp, nil
}

func (s *processFlowService) CreateFlow(ctx context.Context, req ProcessFlowRequest, actor string) (*ProcessFlowResponse, error) {
	if err := s.validateFlowRefs(ctx, req); err != nil {
		return nil, err
	}

	flow := model.StandardProcessFlow{
		ShipTypeID:       req.ShipTypeID,
		TypicalSectionID: req.TypicalSectionID,
		FlowName:         req.FlowName,
		Description:      req.Description,
		IsActive:         true,
	}

	if err := s.repo.Create(ctx, &flow); err != nil {
		return nil, fmt.Errorf("failed to create process flow: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "process_flow", fmt.Sprint(flow.ID), req)

	return s.GetFlowDetail(ctx, flow.ID)
}

func (s *processFlowService) UpdateFlow(ctx context.Context, id uint, req ProcessFlowRequest, actor string) (*ProcessFlowResponse, error) {
	flow, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process flow %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch process flow: %w", err)
	}

	if err := s.validateFlowRefs(ctx, req); err != nil {
		return nil, err
	}

	flow.ShipTypeID = req.ShipTypeID
	flow.TypicalSectionID = req.TypicalSectionID
	flow.FlowName = req.FlowName
	flow.Description = req.Description

	if err := s.repo.Update(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to update process flow: %w", err)
	}

	// Saving the flow record also refreshes the derived total, keeping it
	// consistent even if a bulk caller forgot its explicit recomputation.
	if err := s.recomputeTotal(ctx, flow.ID); err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "process_flow", fmt.Sprint(flow.ID), req)

	return s.GetFlowDetail(ctx, id)
}

// DeactivateFlow is the flow's delete operation: the row is kept and
// is_active flipped off, unlike the hard deletes everywhere else.
func (s *processFlowService) DeactivateFlow(ctx context.Context, id uint, actor string) error {
	flow, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("process flow %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch process flow: %w", err)
	}

	flow.IsActive = false
	if err := s.repo.Update(ctx, flow); err != nil {
		return fmt.Errorf("failed to deactivate process flow: %w", err)
	}

	s.audit.record(ctx, actor, model.AuditActionDeactivate, "process_flow", fmt.Sprint(id), map[string]string{"flow_name": flow.FlowName})
	return nil
}

// --- Step operations ---

// ReplaceSteps discards the flow's whole step set and rebuilds it from the
// submitted rows inside one transaction. Invalid rows (empty name,
// unresolvable work process, non-numeric or duplicate order) are dropped and
// logged, and the batch proceeds: a best-effort import, not strict validation.
func (s *processFlowService) ReplaceSteps(ctx context.Context, flowID uint, req ReplaceStepsRequest, actor string) (*ProcessFlowResponse, error) {
	flow, err := s.repo.FindByID(ctx, flowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process flow %d: %w", flowID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch process flow: %w", err)
	}

	type acceptedRow struct {
		row   BulkStepRow
		order int
		hours decimal.Decimal
		group int
	}

	accepted := make([]acceptedRow, 0, len(req.Steps))
	usedOrders := make(map[int]bool)
	processCache := make(map[uint]*model.WorkProcess)

	for i, row := range req.Steps {
		if row.StepName == "" {
			s.logger.Warn("dropping step row without a name",
				zap.Uint("flow_id", flowID), zap.Int("row", i))
			continue
		}

		order, err := strconv.Atoi(row.StepOrder)
		if err != nil || order < 1 {
			s.logger.Warn("dropping step row with non-numeric step order",
				zap.Uint("flow_id", flowID), zap.Int("row", i), zap.String("step_order", row.StepOrder))
			continue
		}
		if usedOrders[order] {
			s.logger.Warn("dropping step row with duplicate step order",
				zap.Uint("flow_id", flowID), zap.Int("row", i), zap.Int("step_order", order))
			continue
		}

		process, ok := processCache[row.WorkProcessID]
		if !ok {
			process, err = s.workProcessRepo.FindByID(ctx, row.WorkProcessID)
			if err != nil {
				s.logger.Warn("dropping step row with unresolvable work process",
					zap.Uint("flow_id", flowID), zap.Int("row", i), zap.Uint("work_process_id", row.WorkProcessID))
				continue
			}
			processCache[row.WorkProcessID] = process
		}

		group := 0
		if row.ParallelGroup != "" {
			if g, err := strconv.Atoi(row.ParallelGroup); err == nil && g >= 0 {
				group = g
			}
		}

		hours, err := resolveStepHours(row.EstimatedHours, process)
		if err != nil {
			s.logger.Warn("dropping step row with non-numeric estimated hours",
				zap.Uint("flow_id", flowID), zap.Int("row", i), zap.String("estimated_hours", row.EstimatedHours))
			continue
		}

		usedOrders[order] = true
		accepted = append(accepted, acceptedRow{row: row, order: order, hours: hours, group: group})
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteStepsByFlow(txCtx, flow.ID); err != nil {
			return fmt.Errorf("failed to clear existing steps: %w", err)
		}

		created := make(map[int]*model.ProcessFlowStep, len(accepted))
		for _, a := range accepted {
			step := model.ProcessFlowStep{
				FlowID:         flow.ID,
				WorkProcessID:  a.row.WorkProcessID,
				StepName:       a.row.StepName,
				StepOrder:      a.order,
				ParallelGroup:  a.group,
				EstimatedHours: a.hours,
				Description:    a.row.Description,
			}
			if err := s.repo.CreateStep(txCtx, &step); err != nil {
				return fmt.Errorf("failed to insert step %q: %w", a.row.StepName, err)
			}
			created[a.order] = &step
		}

		// Resolve prerequisite edges between the freshly inserted rows by
		// step order; references to dropped or unknown rows are skipped.
		for _, a := range accepted {
			if len(a.row.PrerequisiteOrders) == 0 {
				continue
			}
			var prerequisites []model.ProcessFlowStep
			for _, po := range a.row.PrerequisiteOrders {
				order, err := strconv.Atoi(po)
				if err != nil {
					continue
				}
				if target, ok := created[order]; ok && order != a.order {
					prerequisites = append(prerequisites, *target)
				}
			}
			if len(prerequisites) > 0 {
				if err := s.repo.ReplacePrerequisites(txCtx, created[a.order], prerequisites); err != nil {
					return fmt.Errorf("failed to link prerequisites for step %q: %w", a.row.StepName, err)
				}
			}
		}

		return s.recomputeTotal(txCtx, flow.ID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, model.AuditActionReplaceSteps, "process_flow", fmt.Sprint(flow.ID), map[string]int{
		"submitted": len(req.Steps),
		"accepted":  len(accepted),
	})
	s.notifyTotalChanged(ctx, flow.ID)

	return s.GetFlowDetail(ctx, flow.ID)
}

func (s *processFlowService) AddStep(ctx context.Context, flowID uint, req FlowStepRequest, actor string) (*ProcessFlowResponse, error) {
	flow, err := s.repo.FindByID(ctx, flowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process flow %d: %w", flowID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch process flow: %w", err)
	}

	process, err := s.workProcessRepo.FindByID(ctx, req.WorkProcessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work process %d does not exist", ErrValidation, req.WorkProcessID)
		}
		return nil, fmt.Errorf("failed to resolve work process: %w", err)
	}

	count, err := s.repo.CountStepsWithOrder(ctx, flow.ID, req.StepOrder, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check step order: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: step order %d is already used in this flow", ErrValidation, req.StepOrder)
	}

	hours, err := resolveStepHours(req.EstimatedHours, process)
	if err != nil {
		return nil, fmt.Errorf("%w: estimated_hours must be a valid number", ErrValidation)
	}

	prerequisites, err := s.resolvePrerequisites(ctx, flow.ID, 0, req.PrerequisiteStepIDs)
	if err != nil {
		return nil, err
	}

	step := model.ProcessFlowStep{
		FlowID:         flow.ID,
		WorkProcessID:  process.ID,
		StepName:       req.StepName,
		StepOrder:      req.StepOrder,
		ParallelGroup:  req.ParallelGroup,
		EstimatedHours: hours,
		Description:    req.Description,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateStep(txCtx, &step); err != nil {
			return fmt.Errorf("failed to create step: %w", err)
		}
		if len(prerequisites) > 0 {
			if err := s.repo.ReplacePrerequisites(txCtx, &step, prerequisites); err != nil {
				return fmt.Errorf("failed to link prerequisites: %w", err)
			}
		}
		return s.recomputeTotal(txCtx, flow.ID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, model.AuditActionCreate, "process_flow_step", fmt.Sprint(step.ID), req)
	s.notifyTotalChanged(ctx, flow.ID)

	return s.GetFlowDetail(ctx, flow.ID)
}

func (s *processFlowService) UpdateStep(ctx context.Context, stepID uint, req FlowStepRequest, actor string) (*ProcessFlowResponse, error) {
	step, err := s.repo.FindStepByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("process flow step %d: %w", stepID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch step: %w", err)
	}

	process, err := s.workProcessRepo.FindByID(ctx, req.WorkProcessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: work process %d does not exist", ErrValidation, req.WorkProcessID)
		}
		return nil, fmt.Errorf("failed to resolve work process: %w", err)
	}

	count, err := s.repo.CountStepsWithOrder(ctx, step.FlowID, req.StepOrder, step.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check step order: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: step order %d is already used in this flow", ErrValidation, req.StepOrder)
	}

	hours, err := resolveStepHours(req.EstimatedHours, process)
	if err != nil {
		return nil, fmt.Errorf("%w: estimated_hours must be a valid number", ErrValidation)
	}

	prerequisites, err := s.resolvePrerequisites(ctx, step.FlowID, step.ID, req.PrerequisiteStepIDs)
	if err != nil {
		return nil, err
	}

	step.WorkProcessID = process.ID
	step.WorkProcess = *process
	step.StepName = req.StepName
	step.StepOrder = req.StepOrder
	step.ParallelGroup = req.ParallelGroup
	step.EstimatedHours = hours
	step.Description = req.Description

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.UpdateStep(txCtx, step); err != nil {
			return fmt.Errorf("failed to update step: %w", err)
		}
		if err := s.repo.ReplacePrerequisites(txCtx, step, prerequisites); err != nil {
			return fmt.Errorf("failed to update prerequisites: %w", err)
		}
		return s.recomputeTotal(txCtx, step.FlowID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actor, model.AuditActionUpdate, "process_flow_step", fmt.Sprint(step.ID), req)
	s.notifyTotalChanged(ctx, step.FlowID)

	return s.GetFlowDetail(ctx, step.FlowID)
}

func (s *processFlowService) DeleteStep(ctx context.Context, stepID uint, actor string) error {
	step, err := s.repo.FindStepByID(ctx, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("process flow step %d: %w", stepID, ErrNotFound)
		}
		return fmt.Errorf("failed to fetch step: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteStep(txCtx, step.ID); err != nil {
			return fmt.Errorf("failed to delete step: %w", err)
		}
		return s.recomputeTotal(txCtx, step.FlowID)
	})
	if err != nil {
		return err
	}

	s.audit.record(ctx, actor, model.AuditActionDelete, "process_flow_step", fmt.Sprint(stepID), map[string]string{"step_name": step.StepName})
	s.notifyTotalChanged(ctx, step.FlowID)
	return nil
}

// --- Derivation helpers ---

// resolveStepHours returns the step's estimated hours: the supplied value if
// present, otherwise the work process's derived work hours, otherwise zero.
func resolveStepHours(supplied string, process *model.WorkProcess) (decimal.Decimal, error) {
	if supplied != "" {
		hours, err := decimal.NewFromString(supplied)
		if err != nil {
			return decimal.Zero, err
		}
		if !hours.IsZero() {
			return hours, nil
		}
	}
	if process != nil && process.WorkHours != nil {
		return *process.WorkHours, nil
	}
	return decimal.Zero, nil
}

// recomputeTotal refreshes the flow's derived total from the current step
// set. It must run after every step insert, update, delete or replacement.
func (s *processFlowService) recomputeTotal(ctx context.Context, flowID uint) error {
	total, err := s.repo.SumEstimatedHours(ctx, flowID)
	if err != nil {
		return fmt.Errorf("failed to sum step hours: %w", err)
	}
	if err := s.repo.UpdateTotalHours(ctx, flowID, total); err != nil {
		return fmt.Errorf("failed to store flow total: %w", err)
	}
	return nil
}

func (s *processFlowService) resolvePrerequisites(ctx context.Context, flowID, selfID uint, ids []uint) ([]model.ProcessFlowStep, error) {
	prerequisites := make([]model.ProcessFlowStep, 0, len(ids))
	for _, id := range ids {
		if id == selfID {
			return nil, fmt.Errorf("%w: a step cannot be its own prerequisite", ErrValidation)
		}
		prereq, err := s.repo.FindStepByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: prerequisite step %d does not exist", ErrValidation, id)
			}
			return nil, fmt.Errorf("failed to resolve prerequisite step: %w", err)
		}
		if prereq.FlowID != flowID {
			return nil, fmt.Errorf("%w: prerequisite step %d belongs to a different flow", ErrValidation, id)
		}
		prerequisites = append(prerequisites, *prereq)
	}
	return prerequisites, nil
}

func (s *processFlowService) notifyTotalChanged(ctx context.Context, flowID uint) {
	if s.broadcaster == nil {
		return
	}
	total, err := s.repo.SumEstimatedHours(ctx, flowID)
	if err != nil {
		s.logger.Warn("skipping flow total broadcast", zap.Uint("flow_id", flowID), zap.Error(err))
		return
	}
	s.broadcaster.BroadcastEvent("process_flow.total_updated", map[string]interface{}{
		"flow_id":               flowID,
		"estimated_total_hours": total.StringFixed(2),
	})
}

// --- Response mappers ---

func toProcessFlowResponse(f model.StandardProcessFlow, withSteps bool) ProcessFlowResponse {
	resp := ProcessFlowResponse{
		ID:                  f.ID,
		ShipTypeID:          f.ShipTypeID,
		TypicalSectionID:    f.TypicalSectionID,
		FlowName:            f.FlowName,
		Description:         f.Description,
		EstimatedTotalHours: f.EstimatedTotalHours.StringFixed(2),
		IsActive:            f.IsActive,
		CreatedAt:           f.CreatedAt.Format(time.RFC3339),
	}
	if f.ShipType.ID != 0 {
		resp.ShipTypeName = f.ShipType.ShipType
	}
	if f.TypicalSection.ID != 0 {
		resp.TypicalSectionName = f.TypicalSection.SectionName
	}
	if withSteps {
		resp.Steps = make([]FlowStepResponse, 0, len(f.Steps))
		for _, step := range f.Steps {
			resp.Steps = append(resp.Steps, toFlowStepResponse(step))
		}
	}
	return resp
}

func toFlowStepResponse(step model.ProcessFlowStep) FlowStepResponse {
	prereqIDs := make([]uint, 0, len(step.Prerequisites))
	for _, p := range step.Prerequisites {
		prereqIDs = append(prereqIDs, p.ID)
	}
	resp := FlowStepResponse{
		ID:                  step.ID,
		StepName:            step.StepName,
		WorkProcessID:       step.WorkProcessID,
		StepOrder:           step.StepOrder,
		ParallelGroup:       step.ParallelGroup,
		EstimatedHours:      step.EstimatedHours.StringFixed(2),
		Description:         step.Description,
		PrerequisiteStepIDs: prereqIDs,
	}
	if step.WorkProcess.ID != 0 {
		resp.WorkProcessName = step.WorkProcess.ProcessName
	}
	return resp
}

func (s *processFlowService) validateFlowRefs(ctx context.Context, req ProcessFlowRequest) error {
	if _, err := s.shipTypeRepo.FindByID(ctx, req.ShipTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ship type %d does not exist", ErrValidation, req.ShipTypeID)
		}
		return fmt.Errorf("failed to resolve ship type: %w", err)
	}
	section, err := s.sectionRepo.FindByID(ctx, req.TypicalSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: typical section %d does not exist", ErrValidation, req.TypicalSectionID)
		}
		return fmt.Errorf("failed to resolve typical section: %w", err)
	}
	if section.ShipTypeID != req.ShipTypeID {
		return fmt.Errorf("%w: typical section %d does not belong to ship type %d", ErrValidation, req.TypicalSectionID, req.ShipTypeID)
	}
	return nil
}
