package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

// FileVersionRepository is append-only: no update or delete methods exist
// on purpose.
type FileVersionRepository struct {
	Db *gorm.DB
}

func NewFileVersionRepository() *FileVersionRepository {
	return &FileVersionRepository{Db: api.DB}
}

func (slf *FileVersionRepository) FindByFileID(fileID string) ([]models.FileVersion, error) {
	var versions []models.FileVersion
	err := slf.Db.Where("file_id = ?", fileID).Order("version_number DESC").Find(&versions).Error
	return versions, err
}

func (slf *FileVersionRepository) Create(tx *gorm.DB, version *models.FileVersion) error {
	return tx.Create(version).Error
}
