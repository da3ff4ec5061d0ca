package service

import (
	"errors"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type TemplateService struct {
	templateRepo *repo.TemplateRepository
	activity     *ActivityService
	logger       zerolog.Logger
}

func NewTemplateService() *TemplateService {
	return &TemplateService{
		templateRepo: repo.NewTemplateRepository(),
		activity:     NewActivityService(),
		logger:       api.Logger,
	}
}

func validateTemplateData(data models.TemplateData) error {
	for _, layer := range data.Layers {
		switch layer.Type {
		case "text", "image", "shape":
		default:
			return errors.New("unknown layer type: " + layer.Type)
		}
	}
	return nil
}

// ListVisible returns public templates plus the caller's own. Private
// templates of others are filtered in the query itself.
func (slf *TemplateService) ListVisible(caller policy.Caller, category string) ([]models.Template, error) {
	if !caller.Authenticated() {
		return nil, policy.ErrUnauthenticated
	}
	templates, err := slf.templateRepo.FindVisibleTo(caller.ID, category)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing templates")
		return nil, err
	}
	return templates, nil
}

func (slf *TemplateService) GetByID(caller policy.Caller, id string) (*models.Template, error) {
	template, err := slf.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent and private-inaccessible look identical.
			return nil, policy.ErrForbidden
		}
		slf.logger.Error().Err(err).Str("templateId", id).Msg("Error getting template")
		return nil, err
	}

	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{
		Table:    policy.TableTemplate,
		OwnerID:  template.CreatedBy,
		IsPublic: template.IsPublic,
	}); err != nil {
		return nil, err
	}
	return &template, nil
}

func (slf *TemplateService) Create(caller policy.Caller, template models.Template) (*models.Template, error) {
	if err := policy.Authorize(caller, policy.OpInsert, policy.Row{Table: policy.TableTemplate}); err != nil {
		return nil, err
	}
	if err := validateTemplateData(template.TemplateData); err != nil {
		return nil, err
	}

	owner, err := policy.ForceOwner(caller)
	if err != nil {
		return nil, err
	}
	template.ID = uuid.NewString()
	template.CreatedBy = owner

	if err := slf.templateRepo.Create(&template); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating template")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionCreated, "template", template.ID)
	return &template, nil
}

func (slf *TemplateService) Update(caller policy.Caller, id string, patch models.Template) (*models.Template, error) {
	existing, err := slf.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrForbidden
		}
		return nil, err
	}

	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableTemplate, OwnerID: existing.CreatedBy}); err != nil {
		return nil, err
	}
	if err := validateTemplateData(patch.TemplateData); err != nil {
		return nil, err
	}

	existing.Name = patch.Name
	existing.Description = patch.Description
	existing.Thumbnail = patch.Thumbnail
	existing.TemplateData = patch.TemplateData
	existing.Category = patch.Category
	existing.IsPublic = patch.IsPublic

	if err := slf.templateRepo.Update(&existing); err != nil {
		slf.logger.Error().Err(err).Str("templateId", id).Msg("Error updating template")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUpdated, "template", id)
	return &existing, nil
}

func (slf *TemplateService) Delete(caller policy.Caller, id string) error {
	existing, err := slf.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.ErrForbidden
		}
		return err
	}

	if err := policy.Authorize(caller, policy.OpDelete, policy.Row{Table: policy.TableTemplate, OwnerID: existing.CreatedBy}); err != nil {
		return err
	}

	if err := slf.templateRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Str("templateId", id).Msg("Error deleting template")
		return err
	}

	slf.activity.Record(caller.ID, models.ActionDeleted, "template", id)
	return nil
}
