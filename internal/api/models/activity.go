package models

import "time"

type ActivityAction string

const (
	ActionCreated   ActivityAction = "created"
	ActionUpdated   ActivityAction = "updated"
	ActionDeleted   ActivityAction = "deleted"
	ActionUploaded  ActivityAction = "uploaded"
	ActionCommented ActivityAction = "commented"
)

// ActivityEvent is a real audit row. The dashboard aggregates these with SQL
// instead of fabricating numbers.
type ActivityEvent struct {
	ID           string         `gorm:"primaryKey;type:uuid"`
	UserID       string         `gorm:"type:uuid;index;not null;column:user_id"`
	Action       ActivityAction `gorm:"type:varchar(20);not null"`
	ResourceType string         `gorm:"not null;column:resource_type"` // job, file, comment, version, template
	ResourceID   string         `gorm:"type:uuid;column:resource_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index;column:created_at"`
}

func (ActivityEvent) TableName() string {
	return "activity_events"
}
