package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkType is a labor trade (welder, fitter, ...) with a standard daily-hours
// baseline that work processes scale by their coefficient.
type WorkType struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	WorkTypeName  string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"work_type_name"`
	WorkTypeCode  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"work_type_code"`
	StandardHours decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"standard_hours"`
	Description   string          `gorm:"type:text" json:"description"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// WorkProcess is a specific task performable by a work type. WorkHours is
// derived on every save as StandardHours × Coefficient when a work type is
// set, and null otherwise.
type WorkProcess struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ProcessName string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"process_name"`
	ProcessCode string           `gorm:"type:varchar(20);uniqueIndex;not null" json:"process_code"`
	WorkTypeID  *uint            `gorm:"index" json:"work_type_id"`
	WorkType    *WorkType        `gorm:"foreignKey:WorkTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"work_type,omitempty"`
	Coefficient decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:1.00" json:"coefficient"`
	WorkHours   *decimal.Decimal `gorm:"type:decimal(8,2)" json:"work_hours"`
	Description string           `gorm:"type:text" json:"description"`
	IsActive    bool             `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
