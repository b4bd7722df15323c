package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type ShipTypeRepository interface {
	Create(ctx context.Context, shipType *model.ShipType) error
	Update(ctx context.Context, shipType *model.ShipType) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.ShipType, error)
	List(ctx context.Context, search string, page, limit int) ([]model.ShipType, int64, error)
	ListAll(ctx context.Context) ([]model.ShipType, error)
}

type shipTypeRepository struct {
	db *gorm.DB
}

func NewShipTypeRepository(db *gorm.DB) ShipTypeRepository {
	return &shipTypeRepository{db: db}
}

func (r *shipTypeRepository) Create(ctx context.Context, shipType *model.ShipType) error {
	return GetDB(ctx, r.db).Create(shipType).Error
}

func (r *shipTypeRepository) Update(ctx context.Context, shipType *model.ShipType) error {
	return GetDB(ctx, r.db).Save(shipType).Error
}

func (r *shipTypeRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ShipType{}).Error
}

func (r *shipTypeRepository) FindByID(ctx context.Context, id uint) (*model.ShipType, error) {
	var shipType model.ShipType
	if err := GetDB(ctx, r.db).First(&shipType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shipType, nil
}

func (r *shipTypeRepository) List(ctx context.Context, search string, page, limit int) ([]model.ShipType, int64, error) {
	var shipTypes []model.ShipType
	var total int64

	query := GetDB(ctx, r.db).Model(&model.ShipType{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("ship_type ILIKE ? OR ship_subtype ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("ship_type ASC, ship_subtype ASC").Offset(offset).Limit(limit).Find(&shipTypes).Error; err != nil {
		return nil, 0, err
	}

	return shipTypes, total, nil
}

func (r *shipTypeRepository) ListAll(ctx context.Context) ([]model.ShipType, error) {
	var shipTypes []model.ShipType
	err := GetDB(ctx, r.db).Order("ship_type ASC, ship_subtype ASC").Find(&shipTypes).Error
	return shipTypes, err
}
