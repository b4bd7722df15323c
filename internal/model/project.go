package model

import "time"

// Project is one shipbuilding contract: a hull of a given ship type with a
// contractual delivery date.
type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProjectName  string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"project_name"`
	ShipTypeID   uint       `gorm:"not null;index" json:"ship_type_id"`
	ShipType     ShipType   `gorm:"foreignKey:ShipTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ship_type"`
	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// DeliveryYear returns the year of the delivery date, 0 if none is set.
func (p Project) DeliveryYear() int {
	if p.DeliveryDate == nil {
		return 0
	}
	return p.DeliveryDate.Year()
}
