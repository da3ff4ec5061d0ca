package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	Db *gorm.DB
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{Db: api.DB}
}

func (slf *ProfileRepository) FindByID(id string) (models.Profile, error) {
	var profile models.Profile
	err := slf.Db.Where("id = ?", id).First(&profile).Error
	return profile, err
}

func (slf *ProfileRepository) GetAll() ([]models.Profile, error) {
	var profiles []models.Profile
	err := slf.Db.Order("full_name").Find(&profiles).Error
	return profiles, err
}

// CreateIfAbsent inserts the profile unless one already exists for the same
// identity. The identity primary key makes concurrent first logins
// single-insert; losers of the race are a no-op.
func (slf *ProfileRepository) CreateIfAbsent(profile *models.Profile) error {
	return slf.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(profile).Error
}

func (slf *ProfileRepository) UpdateName(id string, fullName string) error {
	return slf.Db.Model(&models.Profile{}).Where("id = ?", id).
		Update("full_name", fullName).Error
}

func (slf *ProfileRepository) UpdateRole(id string, role models.AppRole) error {
	return slf.Db.Model(&models.Profile{}).Where("id = ?", id).
		Update("role", role).Error
}
