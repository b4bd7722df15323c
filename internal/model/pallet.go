package model

import "time"

// Pallet is a logistics grouping of parts needed by a project section on a
// given date.
type Pallet struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PalletCode   string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"pallet_code"`
	ProjectID    uint       `gorm:"not null;index" json:"project_id"`
	Project      Project    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project"`
	SectionID    uint       `gorm:"not null;index" json:"section_id"`
	Section      Section    `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"section"`
	RequiredDate *time.Time `gorm:"type:date" json:"required_date"`
	IsReceived   bool       `gorm:"default:false" json:"is_received"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
