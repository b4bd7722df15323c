package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Role, error)
	List(ctx context.Context, search string, page, limit int) ([]model.Role, int64, error)
	ListActive(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context, roleID uint) ([]model.Permission, error)
	ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Role{}).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Role, error) {
	var roles []model.Role
	if len(ids) == 0 {
		return roles, nil
	}
	err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&roles).Error
	return roles, err
}

func (r *roleRepository) List(ctx context.Context, search string, page, limit int) ([]model.Role, int64, error) {
	var roles []model.Role
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Role{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&roles).Error; err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

func (r *roleRepository) ListActive(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) ListPermissions(ctx context.Context, roleID uint) ([]model.Permission, error) {
	var permissions []model.Permission
	err := GetDB(ctx, r.db).
		Joins("INNER JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.module ASC, permissions.action ASC").
		Find(&permissions).Error
	return permissions, err
}

// ReplacePermissions swaps the whole permission set of a role, mirroring how
// person-role assignment works.
func (r *roleRepository) ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error; err != nil {
		return err
	}
	for _, permissionID := range permissionIDs {
		link := model.RolePermission{RoleID: roleID, PermissionID: permissionID}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
