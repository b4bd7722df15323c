package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionDelete       = "DELETE"
	AuditActionDeactivate   = "DEACTIVATE"
	AuditActionReplaceSteps = "REPLACE_STEPS"
	AuditActionAssignRoles  = "ASSIGN_ROLES"
)

// AuditLog tracks who changed what and when. Writes are best-effort: a failed
// audit insert never fails the operation it describes.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor     string    `gorm:"type:varchar(50);index" json:"actor"` // employee id from the token, empty for system jobs
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Entity    string    `gorm:"type:varchar(50);not null;index" json:"entity"`
	EntityID  string    `gorm:"type:varchar(50);index" json:"entity_id"`
	Details   string    `gorm:"type:jsonb" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
