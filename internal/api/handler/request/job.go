package request

import "api/internal/api/models"

type CreateJob struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	ClientName  string             `json:"clientName"`
	Priority    models.JobPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      models.JobStatus   `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type UpdateJob struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	ClientName  *string             `json:"clientName,omitempty"`
	Priority    *models.JobPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status      *models.JobStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending in-progress completed"`
}
