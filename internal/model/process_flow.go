package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StandardProcessFlow is a reusable named sequence of work-process steps
// defined per (ship type, typical section) pair. EstimatedTotalHours is
// derived: the sum of EstimatedHours over all steps, recomputed by the
// service layer after any change to the step set.
//
// Deleting a flow flips IsActive instead of removing the row; the step set
// and its hour history stay queryable.
type StandardProcessFlow struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	ShipTypeID          uint             `gorm:"not null;uniqueIndex:idx_flow_name;index" json:"ship_type_id"`
	ShipType            ShipType         `gorm:"foreignKey:ShipTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"ship_type"`
	TypicalSectionID    uint             `gorm:"not null;uniqueIndex:idx_flow_name;index" json:"typical_section_id"`
	TypicalSection      TypicalSection   `gorm:"foreignKey:TypicalSectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"typical_section"`
	FlowName            string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_flow_name" json:"flow_name"`
	Description         string           `gorm:"type:text" json:"description"`
	EstimatedTotalHours decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"estimated_total_hours"`
	Steps               []ProcessFlowStep `gorm:"foreignKey:FlowID" json:"steps,omitempty"`
	IsActive            bool             `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProcessFlowStep is one ordered entry of a flow. StepOrder is unique within
// the flow; ParallelGroup is a planner label (0 = sequential, equal nonzero
// values = may run concurrently) with no execution semantics. EstimatedHours
// defaults to the referenced work process's derived work hours when unset.
//
// Prerequisites is a self-referential edge set keyed by step id. No cycle
// check is enforced; existing data may contain cycles.
type ProcessFlowStep struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	FlowID         uint                `gorm:"not null;uniqueIndex:idx_flow_step_order;index" json:"flow_id"`
	Flow           StandardProcessFlow `gorm:"foreignKey:FlowID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	WorkProcessID  uint                `gorm:"not null;index" json:"work_process_id"`
	WorkProcess    WorkProcess         `gorm:"foreignKey:WorkProcessID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"work_process"`
	StepName       string              `gorm:"type:varchar(100);not null" json:"step_name"`
	StepOrder      int                 `gorm:"not null;uniqueIndex:idx_flow_step_order" json:"step_order"`
	ParallelGroup  int                 `gorm:"not null;default:0" json:"parallel_group"`
	EstimatedHours decimal.Decimal     `gorm:"type:decimal(8,2);not null;default:0" json:"estimated_hours"`
	Description    string              `gorm:"type:text" json:"description"`
	Prerequisites  []ProcessFlowStep   `gorm:"many2many:process_flow_step_prerequisites;joinForeignKey:StepID;joinReferences:PrerequisiteID" json:"prerequisites,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
