package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Person, error)
	List(ctx context.Context, department, search string, page, limit int) ([]model.Person, int64, error)
	ListRoles(ctx context.Context, personID uint) ([]model.Role, error)
	ReplaceRoles(ctx context.Context, personID uint, roleIDs []uint) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Create(person).Error
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Save(person).Error
}

func (r *personRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Person{}).Error
}

func (r *personRepository) FindByID(ctx context.Context, id uint) (*model.Person, error) {
	var person model.Person
	if err := GetDB(ctx, r.db).First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) List(ctx context.Context, department, search string, page, limit int) ([]model.Person, int64, error) {
	var persons []model.Person
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Person{})
	if department != "" {
		query = query.Where("department = ?", department)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR employee_id ILIKE ? OR position ILIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&persons).Error; err != nil {
		return nil, 0, err
	}

	return persons, total, nil
}

func (r *personRepository) ListRoles(ctx context.Context, personID uint) ([]model.Role, error) {
	var roles []model.Role
	err := GetDB(ctx, r.db).
		Joins("INNER JOIN person_roles pr ON pr.role_id = roles.id").
		Where("pr.person_id = ?", personID).
		Order("roles.name ASC").
		Find(&roles).Error
	return roles, err
}

// ReplaceRoles deletes every existing person-role link and recreates the set
// from roleIDs. Role assignment is a full replacement, not an incremental diff.
func (r *personRepository) ReplaceRoles(ctx context.Context, personID uint, roleIDs []uint) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("person_id = ?", personID).Delete(&model.PersonRole{}).Error; err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		link := model.PersonRole{PersonID: personID, RoleID: roleID}
		if err := db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
