package response

import (
	"time"

	"api/internal/api/models"
)

type Job struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ClientName  string             `json:"clientName"`
	Priority    models.JobPriority `json:"priority"`
	Status      models.JobStatus   `json:"status"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type JobWithFiles struct {
	Job
	Files []JobFile `json:"files"`
}
