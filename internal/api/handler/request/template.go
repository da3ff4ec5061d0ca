package request

import "api/internal/api/models"

type CreateTemplate struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description"`
	Thumbnail    string              `json:"thumbnail"`
	TemplateData models.TemplateData `json:"templateData"`
	Category     string              `json:"category"`
	IsPublic     bool                `json:"isPublic"`
}

type UpdateTemplate struct {
	Name         string              `json:"name" validate:"required"`
	Description  string              `json:"description"`
	Thumbnail    string              `json:"thumbnail"`
	TemplateData models.TemplateData `json:"templateData"`
	Category     string              `json:"category"`
	IsPublic     bool                `json:"isPublic"`
}
