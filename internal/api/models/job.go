package models

import "time"

type JobPriority string

const (
	PriorityLow    JobPriority = "low"
	PriorityMedium JobPriority = "medium"
	PriorityHigh   JobPriority = "high"
)

func (p JobPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusInProgress JobStatus = "in-progress"
	StatusCompleted  JobStatus = "completed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Job struct {
	ID          string      `gorm:"primaryKey;type:uuid"`
	Name        string      `gorm:"not null"`
	Description string
	ClientName  string      `gorm:"column:client_name"`
	Priority    JobPriority `gorm:"type:varchar(10);default:'medium'"`
	Status      JobStatus   `gorm:"type:varchar(20);default:'pending'"`
	CreatedBy   string      `gorm:"type:uuid;index;not null;column:created_by"`
	Files       []JobFile   `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime;column:updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
