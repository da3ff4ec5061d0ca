package response

import (
	"time"

	"api/internal/api/models"
)

type Template struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Thumbnail    string              `json:"thumbnail"`
	TemplateData models.TemplateData `json:"templateData"`
	Category     string              `json:"category"`
	IsPublic     bool                `json:"isPublic"`
	CreatedBy    string              `json:"createdBy"`
	CreatedAt    time.Time           `json:"createdAt"`
}
