package models

import "time"

// FileVersion rows are append-only. VersionNumber comes from the job_file
// version_seq counter, bumped in the same transaction as the insert.
type FileVersion struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	FileID        string    `gorm:"type:uuid;not null;column:file_id;uniqueIndex:idx_file_version"`
	VersionNumber int       `gorm:"not null;column:version_number;uniqueIndex:idx_file_version"`
	FilePath      string    `gorm:"not null;column:file_path"`
	FileSize      int64     `gorm:"column:file_size"`
	Changelog     string    `gorm:"type:text"`
	CreatedBy     string    `gorm:"type:uuid;not null;column:created_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime;column:created_at"`
}

func (FileVersion) TableName() string {
	return "file_versions"
}
