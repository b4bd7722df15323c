package model

import "time"

// TypicalSection is a named structural hull section pattern belonging to a
// ship type, used as a template across projects.
type TypicalSection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ShipTypeID  uint      `gorm:"not null;uniqueIndex:idx_typical_section_name;index" json:"ship_type_id"`
	ShipType    ShipType  `gorm:"foreignKey:ShipTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ship_type"`
	SectionName string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_typical_section_name" json:"section_name"`
	SectionCode string    `gorm:"type:varchar(50)" json:"section_code"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
