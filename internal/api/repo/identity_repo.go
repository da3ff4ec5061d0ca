package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type IdentityRepository struct {
	Db *gorm.DB
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{Db: api.DB}
}

func (slf *IdentityRepository) FindByEmail(email string) (models.Identity, error) {
	var identity models.Identity
	err := slf.Db.Where("email = ?", email).First(&identity).Error
	return identity, err
}

func (slf *IdentityRepository) FindByID(id string) (models.Identity, error) {
	var identity models.Identity
	err := slf.Db.Where("id = ?", id).First(&identity).Error
	return identity, err
}

func (slf *IdentityRepository) Create(identity *models.Identity) error {
	return slf.Db.Create(identity).Error
}

func (slf *IdentityRepository) Update(identity *models.Identity) error {
	return slf.Db.Save(identity).Error
}

func (slf *IdentityRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.Identity{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
