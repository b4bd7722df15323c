package model

import "time"

// ShipType represents a vessel category (bulk carrier, container ship, ...)
// with an optional subtype (panamax, capesize, ...). The same category may
// appear several times with different subtypes, so uniqueness covers the pair.
type ShipType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ShipType    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_ship_type_subtype" json:"ship_type"`
	ShipSubtype string    `gorm:"type:varchar(100);uniqueIndex:idx_ship_type_subtype" json:"ship_subtype"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
