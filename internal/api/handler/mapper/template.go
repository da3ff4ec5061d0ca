package mapper

import (
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

type TemplateMapper struct{}

func (TemplateMapper) CreateTemplate(req request.CreateTemplate) models.Template {
	return models.Template{
		Name:         req.Name,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		TemplateData: req.TemplateData,
		Category:     req.Category,
		IsPublic:     req.IsPublic,
	}
}

func (TemplateMapper) UpdateTemplate(req request.UpdateTemplate) models.Template {
	return models.Template{
		Name:         req.Name,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		TemplateData: req.TemplateData,
		Category:     req.Category,
		IsPublic:     req.IsPublic,
	}
}

func (TemplateMapper) ToTemplateResponse(t models.Template) response.Template {
	return response.Template{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Thumbnail:    t.Thumbnail,
		TemplateData: t.TemplateData,
		Category:     t.Category,
		IsPublic:     t.IsPublic,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

func (m TemplateMapper) ToTemplateResponses(templates []models.Template) []response.Template {
	out := make([]response.Template, len(templates))
	for i, t := range templates {
		out[i] = m.ToTemplateResponse(t)
	}
	return out
}
