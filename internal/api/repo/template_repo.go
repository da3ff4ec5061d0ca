package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	Db *gorm.DB
}

func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{Db: api.DB}
}

func (slf *TemplateRepository) FindByID(id string) (models.Template, error) {
	var template models.Template
	err := slf.Db.Where("id = ?", id).First(&template).Error
	return template, err
}

// FindVisibleTo returns public templates plus the caller's own; private
// templates of other users never leave the database.
func (slf *TemplateRepository) FindVisibleTo(userID string, category string) ([]models.Template, error) {
	var templates []models.Template
	q := slf.Db.Where("is_public = ? OR created_by = ?", true, userID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").Find(&templates).Error
	return templates, err
}

func (slf *TemplateRepository) Create(template *models.Template) error {
	return slf.Db.Create(template).Error
}

func (slf *TemplateRepository) Update(template *models.Template) error {
	return slf.Db.Save(template).Error
}

func (slf *TemplateRepository) Delete(id string) error {
	return slf.Db.Where("id = ?", id).Delete(&models.Template{}).Error
}
