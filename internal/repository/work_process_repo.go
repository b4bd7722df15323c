package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type WorkProcessRepository interface {
	Create(ctx context.Context, process *model.WorkProcess) error
	Update(ctx context.Context, process *model.WorkProcess) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.WorkProcess, error)
	List(ctx context.Context, workTypeID uint, search string, page, limit int) ([]model.WorkProcess, int64, error)
}

type workProcessRepository struct {
	db *gorm.DB
}

func NewWorkProcessRepository(db *gorm.DB) WorkProcessRepository {
	return &workProcessRepository{db: db}
}

func (r *workProcessRepository) Create(ctx context.Context, process *model.WorkProcess) error {
	return GetDB(ctx, r.db).Create(process).Error
}

func (r *workProcessRepository) Update(ctx context.Context, process *model.WorkProcess) error {
	return GetDB(ctx, r.db).Save(process).Error
}

func (r *workProcessRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.WorkProcess{}).Error
}

func (r *workProcessRepository) FindByID(ctx context.Context, id uint) (*model.WorkProcess, error) {
	var process model.WorkProcess
	if err := GetDB(ctx, r.db).Preload("WorkType").First(&process, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &process, nil
}

func (r *workProcessRepository) List(ctx context.Context, workTypeID uint, search string, page, limit int) ([]model.WorkProcess, int64, error) {
	var processes []model.WorkProcess
	var total int64

	query := GetDB(ctx, r.db).Model(&model.WorkProcess{})
	if workTypeID != 0 {
		query = query.Where("work_type_id = ?", workTypeID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("process_name ILIKE ? OR process_code ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("WorkType").
		Order("work_type_id ASC, process_name ASC").
		Offset(offset).Limit(limit).
		Find(&processes).Error; err != nil {
		return nil, 0, err
	}

	return processes, total, nil
}
