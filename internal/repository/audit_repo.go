package repository

import (
	"context"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	List(ctx context.Context, entity, actor string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) List(ctx context.Context, entity, actor string, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	query := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if actor != "" {
		query = query.Where("actor = ?", actor)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
