package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	Update(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Section, error)
	List(ctx context.Context, projectID uint, search string, page, limit int) ([]model.Section, int64, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Section, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(ctx context.Context, section *model.Section) error {
	return GetDB(ctx, r.db).Create(section).Error
}

func (r *sectionRepository) Update(ctx context.Context, section *model.Section) error {
	return GetDB(ctx, r.db).Save(section).Error
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Section{}).Error
}

func (r *sectionRepository) FindByID(ctx context.Context, id uint) (*model.Section, error) {
	var section model.Section
	if err := GetDB(ctx, r.db).
		Preload("Project").
		Preload("TypicalSection").
		First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) List(ctx context.Context, projectID uint, search string, page, limit int) ([]model.Section, int64, error) {
	var sections []model.Section
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Section{})
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("section_number ILIKE ?", pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Project").Preload("TypicalSection").
		Order("section_number ASC").
		Offset(offset).Limit(limit).
		Find(&sections).Error; err != nil {
		return nil, 0, err
	}

	return sections, total, nil
}

func (r *sectionRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Section, error) {
	var sections []model.Section
	err := GetDB(ctx, r.db).
		Where("project_id = ?", projectID).
		Order("section_number ASC").
		Find(&sections).Error
	return sections, err
}
