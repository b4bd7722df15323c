package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	List(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]model.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Project{}).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).Preload("ShipType").First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Project{})
	if shipTypeID != 0 {
		query = query.Where("ship_type_id = ?", shipTypeID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("project_name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("ShipType").
		Order("project_name ASC").
		Offset(offset).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}
