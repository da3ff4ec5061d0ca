package service

import (
	"context"
	"errors"
	"fmt"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"
	"api/internal/api/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type JobService struct {
	jobRepo  *repo.JobRepository
	store    *storage.ObjectStore
	activity *ActivityService
	logger   zerolog.Logger
}

func NewJobService(store *storage.ObjectStore) *JobService {
	return &JobService{
		jobRepo:  repo.NewJobRepository(),
		store:    store,
		activity: NewActivityService(),
		logger:   api.Logger,
	}
}

// FindAllForUser retrieves all jobs. Every authenticated caller may read the
// job list; only owners may mutate.
func (slf *JobService) FindAllForUser(caller policy.Caller) ([]models.Job, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableJob}); err != nil {
		return nil, err
	}

	jobs, err := slf.jobRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Str("userID", caller.ID).Msg("Error getting jobs")
		return nil, err
	}
	return jobs, nil
}

func (slf *JobService) FindByID(caller policy.Caller, id string) (*models.Job, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableJob}); err != nil {
		return nil, err
	}

	job, err := slf.jobRepo.FindByIDWithFiles(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %w", ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error getting job")
		return nil, err
	}
	return &job, nil
}

// Create creates a new job. The owner column is forced to the caller;
// whatever the client sent is ignored.
func (slf *JobService) Create(caller policy.Caller, job models.Job) (*models.Job, error) {
	if err := policy.Authorize(caller, policy.OpInsert, policy.Row{Table: policy.TableJob}); err != nil {
		return nil, err
	}

	owner, err := policy.ForceOwner(caller)
	if err != nil {
		return nil, err
	}
	job.ID = uuid.NewString()
	job.CreatedBy = owner
	if job.Priority == "" {
		job.Priority = models.PriorityMedium
	}
	if job.Status == "" {
		job.Status = models.StatusPending
	}
	if !job.Priority.Valid() {
		return nil, errors.New("invalid priority")
	}
	if !job.Status.Valid() {
		return nil, errors.New("invalid status")
	}

	if err := slf.jobRepo.Create(&job); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionCreated, "job", job.ID)
	return &job, nil
}

// Update applies a patch to a job. Only the owner passes the policy check;
// status transitions are unconstrained for the owner.
func (slf *JobService) Update(caller policy.Caller, id string, patch map[string]any) (*models.Job, error) {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error whether the job is absent or inaccessible.
			return nil, policy.ErrForbidden
		}
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error getting job")
		return nil, err
	}

	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableJob, OwnerID: job.CreatedBy}); err != nil {
		return nil, err
	}

	delete(patch, "created_by") // ownership never moves

	if err := slf.jobRepo.Db.Model(&models.Job{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error updating job")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUpdated, "job", id)
	updated, err := slf.jobRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a job and everything hanging off it: versions, comments,
// file rows, then the job itself, all in one transaction. Blob keys are
// parked in the pending-delete set before the storage remove, so a failure
// after commit leaves retried orphans, never dangling metadata.
func (slf *JobService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.ErrForbidden
		}
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error getting job")
		return err
	}

	if err := policy.Authorize(caller, policy.OpDelete, policy.Row{Table: policy.TableJob, OwnerID: job.CreatedBy}); err != nil {
		return err
	}

	var blobKeys []string

	err = slf.jobRepo.Db.Transaction(func(tx *gorm.DB) error {
		var files []models.JobFile
		if err := tx.Where("job_id = ?", id).Find(&files).Error; err != nil {
			return err
		}

		fileIDs := make([]string, 0, len(files))
		for _, f := range files {
			fileIDs = append(fileIDs, f.ID)
			blobKeys = append(blobKeys, f.FilePath)
		}

		if len(fileIDs) > 0 {
			var versions []models.FileVersion
			if err := tx.Where("file_id IN ?", fileIDs).Find(&versions).Error; err != nil {
				return err
			}
			for _, v := range versions {
				blobKeys = append(blobKeys, v.FilePath)
			}

			if err := tx.Where("file_id IN ?", fileIDs).Delete(&models.FileVersion{}).Error; err != nil {
				return err
			}
			if err := tx.Where("file_id IN ?", fileIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("job_id = ?", id).Delete(&models.JobFile{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&models.Job{}).Error
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("jobId", id).Msg("Error deleting job")
		return err
	}

	slf.removeBlobs(ctx, blobKeys)
	slf.activity.Record(caller.ID, models.ActionDeleted, "job", id)
	slf.logger.Info().Str("jobId", id).Int("blobs", len(blobKeys)).Msg("Job deleted")
	return nil
}

// removeBlobs deletes blobs after their metadata is gone. Keys are marked
// pending first; the reconciler retries anything the immediate remove
// missed.
func (slf *JobService) removeBlobs(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := storage.MarkPendingDelete(ctx, keys); err != nil {
		slf.logger.Error().Err(err).Msg("Error marking blobs for deletion")
	}
	if err := slf.store.Remove(ctx, keys); err != nil {
		// Left in the pending set for the reconciler.
		return
	}
	if err := storage.ClearPendingDelete(ctx, keys); err != nil {
		slf.logger.Warn().Err(err).Msg("Error clearing pending-delete keys")
	}
}
