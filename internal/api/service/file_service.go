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

type FileService struct {
	fileRepo    *repo.JobFileRepository
	versionRepo *repo.FileVersionRepository
	jobRepo     *repo.JobRepository
	store       *storage.ObjectStore
	activity    *ActivityService
	logger      zerolog.Logger
}

func NewFileService(store *storage.ObjectStore) *FileService {
	return &FileService{
		fileRepo:    repo.NewJobFileRepository(),
		versionRepo: repo.NewFileVersionRepository(),
		jobRepo:     repo.NewJobRepository(),
		store:       store,
		activity:    NewActivityService(),
		logger:      api.Logger,
	}
}

type UploadInput struct {
	FileName       string
	ContentType    string
	Data           []byte
	IsPresentation bool
}

// Upload stores one blob and its metadata row. The blob goes in first; if
// the metadata insert then fails the key is parked for the reconciler, so no
// orphan survives either ordering of failure.
func (slf *FileService) Upload(ctx context.Context, caller policy.Caller, jobID string, in UploadInput) (*models.JobFile, error) {
	if err := policy.Authorize(caller, policy.OpInsert, policy.Row{Table: policy.TableJobFile}); err != nil {
		return nil, err
	}

	if _, err := slf.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %w", ErrNotFound)
		}
		return nil, err
	}

	owner, err := policy.ForceOwner(caller)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(owner, jobID, in.FileName)
	if err := policy.AuthorizeObject(caller, policy.OpInsert, key); err != nil {
		return nil, err
	}

	if err := slf.store.Put(ctx, key, in.Data, in.ContentType); err != nil {
		return nil, err
	}

	file := models.JobFile{
		ID:             uuid.NewString(),
		JobID:          jobID,
		FileName:       in.FileName,
		FileType:       in.ContentType,
		FileSize:       int64(len(in.Data)),
		FilePath:       key,
		IsPresentation: in.IsPresentation,
		UploadedBy:     owner,
	}
	if err := slf.fileRepo.Create(&file); err != nil {
		slf.logger.Error().Err(err).Str("jobId", jobID).Msg("Error creating file metadata")
		if markErr := storage.MarkPendingDelete(ctx, []string{key}); markErr != nil {
			slf.logger.Error().Err(markErr).Str("key", key).Msg("Error parking orphaned blob")
		}
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUploaded, "file", file.ID)
	return &file, nil
}

func (slf *FileService) GetByID(caller policy.Caller, id string) (*models.JobFile, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableJobFile}); err != nil {
		return nil, err
	}

	file, err := slf.fileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %w", ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("fileId", id).Msg("Error getting file")
		return nil, err
	}
	return &file, nil
}

func (slf *FileService) ListForJob(caller policy.Caller, jobID string) ([]models.JobFile, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableJobFile}); err != nil {
		return nil, err
	}
	files, err := slf.fileRepo.FindByJobID(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Str("jobId", jobID).Msg("Error listing files")
		return nil, err
	}
	return files, nil
}

// Download returns the blob for a file, checked against the object policy.
func (slf *FileService) Download(ctx context.Context, caller policy.Caller, id string) (*models.JobFile, []byte, error) {
	file, err := slf.GetByID(caller, id)
	if err != nil {
		return nil, nil, err
	}

	if err := policy.AuthorizeObject(caller, policy.OpSelect, file.FilePath); err != nil {
		return nil, nil, err
	}

	data, err := slf.store.Get(ctx, file.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return file, data, nil
}

// SetPresentation flags a file for the presentation reel. Uploader only.
func (slf *FileService) SetPresentation(caller policy.Caller, id string, isPresentation bool) (*models.JobFile, error) {
	file, err := slf.fileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrForbidden
		}
		return nil, err
	}

	if err := policy.Authorize(caller, policy.OpUpdate, policy.Row{Table: policy.TableJobFile, OwnerID: file.UploadedBy}); err != nil {
		return nil, err
	}

	if err := slf.fileRepo.Db.Model(&models.JobFile{}).Where("id = ?", id).
		Update("is_presentation", isPresentation).Error; err != nil {
		slf.logger.Error().Err(err).Str("fileId", id).Msg("Error updating file")
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUpdated, "file", id)
	updated, err := slf.fileRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a file's metadata, versions and comments in one
// transaction, then its blobs. Metadata first, blobs via the pending set.
func (slf *FileService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	file, err := slf.fileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.ErrForbidden
		}
		return err
	}

	if err := policy.Authorize(caller, policy.OpDelete, policy.Row{Table: policy.TableJobFile, OwnerID: file.UploadedBy}); err != nil {
		return err
	}
	if err := policy.AuthorizeObject(caller, policy.OpDelete, file.FilePath); err != nil {
		return err
	}

	blobKeys := []string{file.FilePath}

	err = slf.fileRepo.Db.Transaction(func(tx *gorm.DB) error {
		var versions []models.FileVersion
		if err := tx.Where("file_id = ?", id).Find(&versions).Error; err != nil {
			return err
		}
		for _, v := range versions {
			blobKeys = append(blobKeys, v.FilePath)
		}

		if err := tx.Where("file_id = ?", id).Delete(&models.FileVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.JobFile{}).Error
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("fileId", id).Msg("Error deleting file")
		return err
	}

	if err := storage.MarkPendingDelete(ctx, blobKeys); err != nil {
		slf.logger.Error().Err(err).Msg("Error marking blobs for deletion")
	}
	if err := slf.store.Remove(ctx, blobKeys); err == nil {
		if clearErr := storage.ClearPendingDelete(ctx, blobKeys); clearErr != nil {
			slf.logger.Warn().Err(clearErr).Msg("Error clearing pending-delete keys")
		}
	}

	slf.activity.Record(caller.ID, models.ActionDeleted, "file", id)
	return nil
}

// AddVersion appends a new version of a file. The version number comes from
// the per-file counter bumped inside the transaction, so concurrent uploads
// always get distinct numbers.
func (slf *FileService) AddVersion(ctx context.Context, caller policy.Caller, fileID string, in UploadInput, changelog string) (*models.FileVersion, error) {
	if err := policy.Authorize(caller, policy.OpInsert, policy.Row{Table: policy.TableFileVersion}); err != nil {
		return nil, err
	}

	if _, err := slf.fileRepo.FindByID(fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("file %w", ErrNotFound)
		}
		return nil, err
	}

	owner, err := policy.ForceOwner(caller)
	if err != nil {
		return nil, err
	}

	var version models.FileVersion
	var key string

	err = slf.fileRepo.Db.Transaction(func(tx *gorm.DB) error {
		n, err := slf.fileRepo.NextVersionNumber(tx, fileID)
		if err != nil {
			return err
		}

		key = storage.VersionKey(owner, fileID, n, in.FileName)
		if err := policy.AuthorizeObject(caller, policy.OpInsert, key); err != nil {
			return err
		}

		if err := slf.store.Put(ctx, key, in.Data, in.ContentType); err != nil {
			return err
		}

		version = models.FileVersion{
			ID:            uuid.NewString(),
			FileID:        fileID,
			VersionNumber: n,
			FilePath:      key,
			FileSize:      int64(len(in.Data)),
			Changelog:     changelog,
			CreatedBy:     owner,
		}
		return slf.versionRepo.Create(tx, &version)
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("fileId", fileID).Msg("Error adding file version")
		if key != "" {
			if markErr := storage.MarkPendingDelete(ctx, []string{key}); markErr != nil {
				slf.logger.Error().Err(markErr).Str("key", key).Msg("Error parking orphaned version blob")
			}
		}
		return nil, err
	}

	slf.activity.Record(caller.ID, models.ActionUploaded, "version", version.ID)
	return &version, nil
}

func (slf *FileService) ListVersions(caller policy.Caller, fileID string) ([]models.FileVersion, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableFileVersion}); err != nil {
		return nil, err
	}
	versions, err := slf.versionRepo.FindByFileID(fileID)
	if err != nil {
		slf.logger.Error().Err(err).Str("fileId", fileID).Msg("Error listing versions")
		return nil, err
	}
	return versions, nil
}

// DownloadVersion returns the blob of one historical version.
func (slf *FileService) DownloadVersion(ctx context.Context, caller policy.Caller, fileID string, versionNumber int) (*models.FileVersion, []byte, error) {
	if err := policy.Authorize(caller, policy.OpSelect, policy.Row{Table: policy.TableFileVersion}); err != nil {
		return nil, nil, err
	}

	var version models.FileVersion
	err := slf.versionRepo.Db.Where("file_id = ? AND version_number = ?", fileID, versionNumber).First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("version %w", ErrNotFound)
		}
		return nil, nil, err
	}

	if err := policy.AuthorizeObject(caller, policy.OpSelect, version.FilePath); err != nil {
		return nil, nil, err
	}

	data, err := slf.store.Get(ctx, version.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return &version, data, nil
}
