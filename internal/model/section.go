package model

import "time"

// Section is one structural section of a project hull, instantiated from a
// typical-section template and tracked through the on-block/off-block cycle.
type Section struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	SectionNumber       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"section_number"`
	ProjectID           uint           `gorm:"not null;index" json:"project_id"`
	Project             Project        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"project"`
	TypicalSectionID    uint           `gorm:"not null;index" json:"typical_section_id"`
	TypicalSection      TypicalSection `gorm:"foreignKey:TypicalSectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"typical_section"`
	PlannedStartDate    *time.Time     `gorm:"type:date" json:"planned_start_date"`
	OnBlockDate         *time.Time     `gorm:"type:date" json:"on_block_date"`
	OffBlockDate        *time.Time     `gorm:"type:date" json:"off_block_date"`
	EndDate             *time.Time     `gorm:"type:date" json:"end_date"`
	ModelReceived       bool           `gorm:"default:false" json:"model_received"`
	BOMReceived         bool           `gorm:"default:false" json:"bom_received"`
	StartConditionsMet  bool           `gorm:"default:false" json:"start_conditions_met"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// OnBlockCycleDays returns off_block − on_block in whole days, 0 when either
// date is missing.
func (s Section) OnBlockCycleDays() int {
	if s.OnBlockDate == nil || s.OffBlockDate == nil {
		return 0
	}
	return int(s.OffBlockDate.Sub(*s.OnBlockDate).Hours() / 24)
}
