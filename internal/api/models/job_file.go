package models

import "time"

// JobFile is the metadata row for an uploaded blob. FilePath is the object
// store key; its leading segment is the uploader's identity id, which is what
// the object policy compares against the caller.
type JobFile struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	JobID          string    `gorm:"type:uuid;index;not null;column:job_id"`
	FileName       string    `gorm:"not null;column:file_name"`
	FileType       string    `gorm:"column:file_type"`
	FileSize       int64     `gorm:"column:file_size"`
	FilePath       string    `gorm:"not null;column:file_path"`
	IsPresentation bool      `gorm:"default:false;column:is_presentation"`
	UploadedBy     string    `gorm:"type:uuid;index;not null;column:uploaded_by"`
	VersionSeq     int       `gorm:"default:0;column:version_seq"`
	CreatedAt      time.Time `gorm:"autoCreateTime;column:created_at"`
}

func (JobFile) TableName() string {
	return "job_files"
}
