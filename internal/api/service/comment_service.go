package service

import (
	"errors"
	"fmt"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo *repo.CommentRepository
	fileRepo    *repo.JobFileRepository
	activity    *ActivityService
	logger      zerolog.Logger
}

func NewCommentService() *CommentService {
	return &CommentService{
		commentRepo: repo.NewCommentRepository(),
		fileRepo:    repo.NewJobFileRepository(),
		activity:    NewActivityService(),
		logger:      api.Logger,
	}
}

func (slf *CommentService) ListForFile(caller policy.Caller, fileID string) ([]models.Comment, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableComment}); err != nil {
		return nil, err
	}
	comments, err := slf.commentRepo.FindByFileID(fileID)
	if err != nil {
		slf.logger.Error().Err(err).Str("fileId", fileID).Msg("Error listing comments")
		return nil, err
	}
	return comments, nil
}

// Create posts a comment on a file. The author column is forced to the
// caller. ParentID threads replies; the parent must be on the same file.
func (slf *CommentService) Create(caller policy.Caller, fileID string, text string, parentID *string) (*models.Comment, error) {
	if err := policy.Authorize(caller, policy.OpInsert, policy.Row{Table: policy.TableComment}); err != nil {
		return nil, err
	}

	if _, err := slf.fileRepo.FindByID(fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %w", ErrNotFound)
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := slf.commentRepo.FindByID(*parentID)
		if err != nil || parent.FileID != fileID {
			return nil, fmt.Errorf("parent comment %w", ErrNotFound)
		}
	}

	author, err := policy.ForceOwner(caller)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		FileID:   fileID,
		UserID:   author,
		Comment:  text,
		ParentID: parentID,
	}
	if err := slf.commentRepo.Create(&comment); err != nil {
		slf.logger.Error().Err(err).Str("fileId", fileID).Msg("Error creating comment")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionCommented, "file", fileID)
	return &comment, nil
}

func (slf *CommentService) Update(caller policy.Caller, id string, text string) (*models.Comment, error) {
	comment, err := slf.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrForbidden
		}
		return nil, err
	}

	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableComment, OwnerID: comment.UserID}); err != nil {
		return nil, err
	}

	if err := slf.commentRepo.UpdateText(id, text); err != nil {
		slf.logger.Error().Err(err).Str("commentId", id).Msg("Error updating comment")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUpdated, "comment", id)
	updated, err := slf.commentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (slf *CommentService) Delete(caller policy.Caller, id string) error {
	comment, err := slf.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.ErrForbidden
		}
		return err
	}

	if err := policy.Authorize(caller, policy.OpDelete, policy.Row{Table: policy.TableComment, OwnerID: comment.UserID}); err != nil {
		return err
	}

	if err := slf.commentRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Str("commentId", id).Msg("Error deleting comment")
		return err
	}

	slf.activity.Record(caller.ID, models.ActionDeleted, "comment", id)
	return nil
}
