package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type TypicalSectionRepository interface {
	Create(ctx context.Context, section *model.TypicalSection) error
	Update(ctx context.Context, section *model.TypicalSection) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.TypicalSection, error)
	List(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]model.TypicalSection, int64, error)
}

type typicalSectionRepository struct {
	db *gorm.DB
}

func NewTypicalSectionRepository(db *gorm.DB) TypicalSectionRepository {
	return &typicalSectionRepository{db: db}
}

func (r *typicalSectionRepository) Create(ctx context.Context, section *model.TypicalSection) error {
	return GetDB(ctx, r.db).Create(section).Error
}

func (r *typicalSectionRepository) Update(ctx context.Context, section *model.TypicalSection) error {
	return GetDB(ctx, r.db).Save(section).Error
}

func (r *typicalSectionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TypicalSection{}).Error
}

func (r *typicalSectionRepository) FindByID(ctx context.Context, id uint) (*model.TypicalSection, error) {
	var section model.TypicalSection
	if err := GetDB(ctx, r.db).Preload("ShipType").First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *typicalSectionRepository) List(ctx context.Context, shipTypeID uint, search string, page, limit int) ([]model.TypicalSection, int64, error) {
	var sections []model.TypicalSection
	var total int64

	query := GetDB(ctx, r.db).Model(&model.TypicalSection{})
	if shipTypeID != 0 {
		query = query.Where("ship_type_id = ?", shipTypeID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("section_name ILIKE ? OR section_code ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("ShipType").
		Order("ship_type_id ASC, section_name ASC").
		Offset(offset).Limit(limit).
		Find(&sections).Error; err != nil {
		return nil, 0, err
	}

	return sections, total, nil
}
