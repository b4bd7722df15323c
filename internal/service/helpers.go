package service

import (
	"context"
	"encoding/json"
	"time"

	"shipyard/internal/model"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// parseOptionalDate parses a strict YYYY-MM-DD date. All date fields here
// are optional tracking dates: a missing or unparsable value is stored as
// absent, never defaulted to today or zero.
func parseOptionalDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// EventBroadcaster pushes planner notifications out over the websocket hub.
// Services treat it as optional: a nil broadcaster disables notifications.
type EventBroadcaster interface {
	BroadcastEvent(event string, payload interface{})
}

// auditRecorder writes best-effort audit entries. A failed insert is ignored:
// the operation it describes has already succeeded.
type auditRecorder struct {
	db *gorm.DB
}

func newAuditRecorder(db *gorm.DB) auditRecorder {
	return auditRecorder{db: db}
}

func (a auditRecorder) record(ctx context.Context, actor, action, entity, entityID string, details interface{}) {
	if a.db == nil {
		return
	}
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  string(detailsJSON),
	}
	_ = a.db.WithContext(ctx).Create(&entry).Error
}
