package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	Create(ctx context.Context, permission *model.Permission) error
	Update(ctx context.Context, permission *model.Permission) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Permission, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Permission, error)
	List(ctx context.Context, module string, page, limit int) ([]model.Permission, int64, error)
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

func (r *permissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	return GetDB(ctx, r.db).Create(permission).Error
}

func (r *permissionRepository) Update(ctx context.Context, permission *model.Permission) error {
	return GetDB(ctx, r.db).Save(permission).Error
}

func (r *permissionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Permission{}).Error
}

func (r *permissionRepository) FindByID(ctx context.Context, id uint) (*model.Permission, error) {
	var permission model.Permission
	if err := GetDB(ctx, r.db).First(&permission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *permissionRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Permission, error) {
	var permissions []model.Permission
	if len(ids) == 0 {
		return permissions, nil
	}
	err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&permissions).Error
	return permissions, err
}

func (r *permissionRepository) List(ctx context.Context, module string, page, limit int) ([]model.Permission, int64, error) {
	var permissions []model.Permission
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Permission{})
	if module != "" {
		query = query.Where("module = ?", module)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("module ASC, action ASC").Offset(offset).Limit(limit).Find(&permissions).Error; err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}
