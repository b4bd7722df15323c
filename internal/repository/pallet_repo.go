package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type PalletRepository interface {
	Create(ctx context.Context, pallet *model.Pallet) error
	Update(ctx context.Context, pallet *model.Pallet) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Pallet, error)
	List(ctx context.Context, projectID, sectionID uint, search string, page, limit int) ([]model.Pallet, int64, error)
}

type palletRepository struct {
	db *gorm.DB
}

func NewPalletRepository(db *gorm.DB) PalletRepository {
	return &palletRepository{db: db}
}

func (r *palletRepository) Create(ctx context.Context, pallet *model.Pallet) error {
	return GetDB(ctx, r.db).Create(pallet).Error
}

func (r *palletRepository) Update(ctx context.Context, pallet *model.Pallet) error {
	return GetDB(ctx, r.db).Save(pallet).Error
}

func (r *palletRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Pallet{}).Error
}

func (r *palletRepository) FindByID(ctx context.Context, id uint) (*model.Pallet, error) {
	var pallet model.Pallet
	if err := GetDB(ctx, r.db).
		Preload("Project").
		Preload("Section").
		First(&pallet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pallet, nil
}

func (r *palletRepository) List(ctx context.Context, projectID, sectionID uint, search string, page, limit int) ([]model.Pallet, int64, error) {
	var pallets []model.Pallet
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Pallet{})
	if projectID != 0 {
		query = query.Where("project_id = ?", projectID)
	}
	if sectionID != 0 {
		query = query.Where("section_id = ?", sectionID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("pallet_code ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Project").Preload("Section").
		Order("pallet_code ASC").
		Offset(offset).Limit(limit).
		Find(&pallets).Error; err != nil {
		return nil, 0, err
	}

	return pallets, total, nil
}
