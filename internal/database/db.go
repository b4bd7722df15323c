package database

import (
	"shipyard/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models; join tables come along via associations
	err = db.AutoMigrate(
		&model.ShipType{},
		&model.TypicalSection{},
		&model.WorkType{},
		&model.WorkProcess{},
		&model.StandardProcessFlow{},
		&model.ProcessFlowStep{},
		&model.Project{},
		&model.Section{},
		&model.Pallet{},
		&model.Person{},
		&model.Role{},
		&model.Permission{},
		&model.PersonRole{},
		&model.RolePermission{},
		&model.AuditLog{},
	)
	if err != nil {
		logger.Warn("failed to auto-migrate models", zap.Error(err))
	}

	return db, nil
}
