package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type WorkTypeRepository interface {
	Create(ctx context.Context, workType *model.WorkType) error
	Update(ctx context.Context, workType *model.WorkType) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.WorkType, error)
	List(ctx context.Context, search string, page, limit int) ([]model.WorkType, int64, error)
}

type workTypeRepository struct {
	db *gorm.DB
}

func NewWorkTypeRepository(db *gorm.DB) WorkTypeRepository {
	return &workTypeRepository{db: db}
}

func (r *workTypeRepository) Create(ctx context.Context, workType *model.WorkType) error {
	return GetDB(ctx, r.db).Create(workType).Error
}

func (r *workTypeRepository) Update(ctx context.Context, workType *model.WorkType) error {
	return GetDB(ctx, r.db).Save(workType).Error
}

func (r *workTypeRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.WorkType{}).Error
}

func (r *workTypeRepository) FindByID(ctx context.Context, id uint) (*model.WorkType, error) {
	var workType model.WorkType
	if err := GetDB(ctx, r.db).First(&workType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &workType, nil
}

func (r *workTypeRepository) List(ctx context.Context, search string, page, limit int) ([]model.WorkType, int64, error) {
	var workTypes []model.WorkType
	var total int64

	query := GetDB(ctx, r.db).Model(&model.WorkType{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("work_type_name ILIKE ? OR work_type_code ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("work_type_name ASC").Offset(offset).Limit(limit).Find(&workTypes).Error; err != nil {
		return nil, 0, err
	}

	return workTypes, total, nil
}
