package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type JobFileRepository struct {
	Db *gorm.DB
}

func NewJobFileRepository() *JobFileRepository {
	return &JobFileRepository{Db: api.DB}
}

func (slf *JobFileRepository) FindByID(id string) (models.JobFile, error) {
	var file models.JobFile
	err := slf.Db.Where("id = ?", id).First(&file).Error
	return file, err
}

func (slf *JobFileRepository) FindByJobID(jobID string) ([]models.JobFile, error) {
	var files []models.JobFile
	err := slf.Db.Where("job_id = ?", jobID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (slf *JobFileRepository) Create(file *models.JobFile) error {
	return slf.Db.Create(file).Error
}

// NextVersionNumber bumps the per-file counter and returns the new value.
// The single UPDATE ... RETURNING keeps concurrent version uploads from
// ever seeing the same number. Must run inside the caller's transaction.
func (slf *JobFileRepository) NextVersionNumber(tx *gorm.DB, fileID string) (int, error) {
	var next int
	err := tx.Raw(
		"UPDATE job_files SET version_seq = version_seq + 1 WHERE id = ? RETURNING version_seq",
		fileID,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	if next == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return next, nil
}
