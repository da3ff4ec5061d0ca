package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: api.DB}
}

// FindByID retrieves a job by ID
func (slf *JobRepository) FindByID(id string) (models.Job, error) {
	var job models.Job
	err := slf.Db.Where("id = ?", id).First(&job).Error
	return job, err
}

func (slf *JobRepository) FindByIDWithFiles(id string) (models.Job, error) {
	var job models.Job
	err := slf.Db.Preload("Files").Where("id = ?", id).First(&job).Error
	return job, err
}

func (slf *JobRepository) GetAll() ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (slf *JobRepository) Create(job *models.Job) error {
	return slf.Db.Create(job).Error
}
