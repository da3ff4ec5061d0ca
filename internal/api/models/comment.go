package models

import "time"

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	FileID    string    `gorm:"type:uuid;index;not null;column:file_id"`
	UserID    string    `gorm:"type:uuid;index;not null;column:user_id"`
	Comment   string    `gorm:"type:text;not null"`
	ParentID  *string   `gorm:"type:uuid;column:parent_id"` // nil for top-level comments
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
