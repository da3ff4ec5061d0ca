package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	Db *gorm.DB
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{Db: api.DB}
}

func (slf *CommentRepository) FindByID(id string) (models.Comment, error) {
	var comment models.Comment
	err := slf.Db.Where("id = ?", id).First(&comment).Error
	return comment, err
}

func (slf *CommentRepository) FindByFileID(fileID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := slf.Db.Where("file_id = ?", fileID).Order("created_at").Find(&comments).Error
	return comments, err
}

func (slf *CommentRepository) Create(comment *models.Comment) error {
	return slf.Db.Create(comment).Error
}

func (slf *CommentRepository) UpdateText(id string, text string) error {
	return slf.Db.Model(&models.Comment{}).Where("id = ?", id).
		Update("comment", text).Error
}

func (slf *CommentRepository) Delete(id string) error {
	return slf.Db.Where("id = ?", id).Delete(&models.Comment{}).Error
}
