package models

import "time"

// Activity log actions.
const (
	ActivityActionUpload  = "upload"
	ActivityActionCreate  = "create"
	ActivityActionArchive = "archive"
	ActivityActionUpdate  = "update"
)

// Activity log entity types.
const (
	EntityTypeDocument = "document"
	EntityTypeTask     = "task"
	EntityTypeMeeting  = "meeting"
	EntityTypeEmail    = "email"
)

// ActivityLog is the append-only audit trail. One entry is written in the
// same transaction as every successful create/update/archive; rows are
// never mutated or deleted.
type ActivityLog struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	UserID      string `gorm:"not null;index" json:"user_id"`
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	Action      string `gorm:"not null" json:"action"`      // upload, create, archive, update
	EntityType  string `gorm:"not null" json:"entity_type"` // document, task, meeting, email
	EntityID    *uint  `json:"entity_id"`
	Description string `gorm:"not null" json:"description"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
