package repository

import (
	"context"

	"shipyard/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProcessFlowRepository interface {
	Create(ctx context.Context, flow *model.StandardProcessFlow) error
	Update(ctx context.Context, flow *model.StandardProcessFlow) error
	FindByID(ctx context.Context, id uint) (*model.StandardProcessFlow, error)
	FindByIDWithSteps(ctx context.Context, id uint) (*model.StandardProcessFlow, error)
	List(ctx context.Context, shipTypeID, typicalSectionID uint, search string, includeInactive bool, page, limit int) ([]model.StandardProcessFlow, int64, error)
	UpdateTotalHours(ctx context.Context, flowID uint, total decimal.Decimal) error
	SumEstimatedHours(ctx context.Context, flowID uint) (decimal.Decimal, error)

	CreateStep(ctx context.Context, step *model.ProcessFlowStep) error
	UpdateStep(ctx context.Context, step *model.ProcessFlowStep) error
	DeleteStep(ctx context.Context, id uint) error
	FindStepByID(ctx context.Context, id uint) (*model.ProcessFlowStep, error)
	ListSteps(ctx context.Context, flowID uint) ([]model.ProcessFlowStep, error)
	DeleteStepsByFlow(ctx context.Context, flowID uint) error
	CountStepsWithOrder(ctx context.Context, flowID uint, stepOrder int, excludeStepID uint) (int64, error)
	ReplacePrerequisites(ctx context.Context, step *model.ProcessFlowStep, prerequisites []model.ProcessFlowStep) error
}

type processFlowRepository struct {
	db *gorm.DB
}

func NewProcessFlowRepository(db *gorm.DB) ProcessFlowRepository {
	return &processFlowRepository{db: db}
}

func (r *processFlowRepository) Create(ctx context.Context, flow *model.StandardProcessFlow) error {
	return GetDB(ctx, r.db).Create(flow).Error
}

func (r *processFlowRepository) Update(ctx context.Context, flow *model.StandardProcessFlow) error {
	return GetDB(ctx, r.db).Save(flow).Error
}

func (r *processFlowRepository) FindByID(ctx context.Context, id uint) (*model.StandardProcessFlow, error) {
	var flow model.StandardProcessFlow
	if err := GetDB(ctx, r.db).
		Preload("ShipType").
		Preload("TypicalSection").
		First(&flow, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *processFlowRepository) FindByIDWithSteps(ctx context.Context, id uint) (*model.StandardProcessFlow, error) {
	var flow model.StandardProcessFlow
	if err := GetDB(ctx, r.db).
		Preload("ShipType").
		Preload("TypicalSection").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC, parallel_group ASC")
		}).
		Preload("Steps.WorkProcess").
		Preload("Steps.Prerequisites").
		First(&flow, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *processFlowRepository) List(ctx context.Context, shipTypeID, typicalSectionID uint, search string, includeInactive bool, page, limit int) ([]model.StandardProcessFlow, int64, error) {
	var flows []model.StandardProcessFlow
	var total int64

	query := GetDB(ctx, r.db).Model(&model.StandardProcessFlow{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if shipTypeID != 0 {
		query = query.Where("ship_type_id = ?", shipTypeID)
	}
	if typicalSectionID != 0 {
		query = query.Where("typical_section_id = ?", typicalSectionID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("flow_name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("ShipType").Preload("TypicalSection").
		Order("ship_type_id ASC, typical_section_id ASC, flow_name ASC").
		Offset(offset).Limit(limit).
		Find(&flows).Error; err != nil {
		return nil, 0, err
	}

	return flows, total, nil
}

func (r *processFlowRepository) UpdateTotalHours(ctx context.Context, flowID uint, total decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.StandardProcessFlow{}).
		Where("id = ?", flowID).
		Update("estimated_total_hours", total).Error
}

// SumEstimatedHours aggregates step hours in the database so recomputation
// stays exact and side-effect free no matter how many steps a flow carries.
func (r *processFlowRepository) SumEstimatedHours(ctx context.Context, flowID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := GetDB(ctx, r.db).Model(&model.ProcessFlowStep{}).
		Where("flow_id = ?", flowID).
		Select("COALESCE(SUM(estimated_hours), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *processFlowRepository) CreateStep(ctx context.Context, step *model.ProcessFlowStep) error {
	return GetDB(ctx, r.db).Omit("Prerequisites").Create(step).Error
}

func (r *processFlowRepository) UpdateStep(ctx context.Context, step *model.ProcessFlowStep) error {
	return GetDB(ctx, r.db).Omit("Prerequisites").Save(step).Error
}

func (r *processFlowRepository) DeleteStep(ctx context.Context, id uint) error {
	db := GetDB(ctx, r.db)
	// Drop prerequisite edges in both directions before removing the step.
	if err := db.Exec(
		"DELETE FROM process_flow_step_prerequisites WHERE step_id = ? OR prerequisite_id = ?",
		id, id,
	).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.ProcessFlowStep{}).Error
}

func (r *processFlowRepository) FindStepByID(ctx context.Context, id uint) (*model.ProcessFlowStep, error) {
	var step model.ProcessFlowStep
	if err := GetDB(ctx, r.db).
		Preload("WorkProcess").
		Preload("Prerequisites").
		First(&step, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *processFlowRepository) ListSteps(ctx context.Context, flowID uint) ([]model.ProcessFlowStep, error) {
	var steps []model.ProcessFlowStep
	err := GetDB(ctx, r.db).
		Preload("WorkProcess").
		Preload("Prerequisites").
		Where("flow_id = ?", flowID).
		Order("step_order ASC, parallel_group ASC").
		Find(&steps).Error
	return steps, err
}

func (r *processFlowRepository) DeleteStepsByFlow(ctx context.Context, flowID uint) error {
	db := GetDB(ctx, r.db)
	if err := db.Exec(
		`DELETE FROM process_flow_step_prerequisites
		 WHERE step_id IN (SELECT id FROM process_flow_steps WHERE flow_id = ?)
		    OR prerequisite_id IN (SELECT id FROM process_flow_steps WHERE flow_id = ?)`,
		flowID, flowID,
	).Error; err != nil {
		return err
	}
	return db.Where("flow_id = ?", flowID).Delete(&model.ProcessFlowStep{}).Error
}

func (r *processFlowRepository) CountStepsWithOrder(ctx context.Context, flowID uint, stepOrder int, excludeStepID uint) (int64, error) {
	var count int64
	query := GetDB(ctx, r.db).Model(&model.ProcessFlowStep{}).
		Where("flow_id = ? AND step_order = ?", flowID, stepOrder)
	if excludeStepID != 0 {
		query = query.Where("id != ?", excludeStepID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *processFlowRepository) ReplacePrerequisites(ctx context.Context, step *model.ProcessFlowStep, prerequisites []model.ProcessFlowStep) error {
	return GetDB(ctx, r.db).Model(step).Association("Prerequisites").Replace(prerequisites)
}
