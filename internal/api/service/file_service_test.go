package service

import (
	"context"
	"sync"
	"testing"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/internal/api/repo"
	"api/internal/api/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestJob(t *testing.T, ownerID string) models.Job {
	job := models.Job{
		ID:        uuid.NewString(),
		Name:      "Test Job",
		Priority:  models.PriorityMedium,
		Status:    models.StatusPending,
		CreatedBy: ownerID,
	}
	require.NoError(t, api.DB.Create(&job).Error)
	return job
}

func createTestFile(t *testing.T, jobID, uploaderID string) models.JobFile {
	file := models.JobFile{
		ID:         uuid.NewString(),
		JobID:      jobID,
		FileName:   "mockup.psd",
		FileType:   "image/vnd.adobe.photoshop",
		FileSize:   1024,
		FilePath:   storage.ObjectKey(uploaderID, jobID, "mockup.psd"),
		UploadedBy: uploaderID,
	}
	require.NoError(t, api.DB.Create(&file).Error)
	return file
}

func TestFile_SetPresentation_OwnerOnly(t *testing.T) {
	setupJobTestDB(t)

	service := NewFileService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	job := createTestJob(t, owner.ID)
	defer cleanupJob(t, job.ID)
	file := createTestFile(t, job.ID, owner.ID)

	_, err := service.SetPresentation(callerFor(other), file.ID, true)
	require.ErrorIs(t, err, policy.ErrForbidden)

	updated, err := service.SetPresentation(callerFor(owner), file.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPresentation)
}

func TestFileVersion_ConcurrentNumbering(t *testing.T) {
	setupJobTestDB(t)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)

	job := createTestJob(t, owner.ID)
	defer cleanupJob(t, job.ID)
	file := createTestFile(t, job.ID, owner.ID)

	fileRepo := repo.NewJobFileRepository()

	// N concurrent writers each bump the counter inside their own
	// transaction; every one must come away with a distinct number.
	const n = 16
	numbers := make([]int, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fileRepo.Db.Transaction(func(tx *gorm.DB) error {
				num, err := fileRepo.NextVersionNumber(tx, file.ID)
				if err != nil {
					return err
				}
				numbers[i] = num
				return nil
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[numbers[i]], "duplicate version number %d", numbers[i])
		seen[numbers[i]] = true
	}
	assert.Len(t, seen, n)
}

func TestFileVersion_NumberForMissingFile(t *testing.T) {
	setupJobTestDB(t)

	fileRepo := repo.NewJobFileRepository()

	err := fileRepo.Db.Transaction(func(tx *gorm.DB) error {
		_, err := fileRepo.NextVersionNumber(tx, "00000000-0000-0000-0000-000000000000")
		return err
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestJob_Delete_Cascades(t *testing.T) {
	setupJobTestDB(t)

	store, err := storage.NewObjectStore()
	require.NoError(t, err)
	jobService := NewJobService(store)
	fileService := NewFileService(store)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)

	job := createTestJob(t, owner.ID)
	file := createTestFile(t, job.ID, owner.ID)

	comment := models.Comment{
		ID:      uuid.NewString(),
		FileID:  file.ID,
		UserID:  owner.ID,
		Comment: "looks good",
	}
	require.NoError(t, api.DB.Create(&comment).Error)

	version := models.FileVersion{
		ID:            uuid.NewString(),
		FileID:        file.ID,
		VersionNumber: 1,
		FilePath:      storage.VersionKey(owner.ID, file.ID, 1, "mockup.psd"),
		CreatedBy:     owner.ID,
	}
	require.NoError(t, api.DB.Create(&version).Error)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, file.FilePath, []byte("original bytes"), file.FileType))
	require.NoError(t, store.Put(ctx, version.FilePath, []byte("version bytes"), file.FileType))

	require.NoError(t, jobService.Delete(ctx, callerFor(owner), job.ID))

	// Every dependent row is gone with the job.
	_, err = jobService.FindByID(callerFor(owner), job.ID)
	assert.Error(t, err)

	_, err = fileService.GetByID(callerFor(owner), file.ID)
	assert.Error(t, err)

	var count int64
	api.DB.Model(&models.Comment{}).Where("file_id = ?", file.ID).Count(&count)
	assert.Zero(t, count)
	api.DB.Model(&models.FileVersion{}).Where("file_id = ?", file.ID).Count(&count)
	assert.Zero(t, count)

	// And so are the blobs.
	_, err = store.Get(ctx, file.FilePath)
	assert.Error(t, err, "file blob must be unreachable after job delete")
	_, err = store.Get(ctx, version.FilePath)
	assert.Error(t, err, "version blob must be unreachable after job delete")
}

func TestJob_Delete_NonOwnerForbidden(t *testing.T) {
	setupJobTestDB(t)

	store, err := storage.NewObjectStore()
	require.NoError(t, err)
	service := NewJobService(store)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	job := createTestJob(t, owner.ID)
	defer cleanupJob(t, job.ID)

	err = service.Delete(context.Background(), callerFor(other), job.ID)
	require.ErrorIs(t, err, policy.ErrForbidden)

	// Still there.
	_, err = service.FindByID(callerFor(owner), job.ID)
	assert.NoError(t, err)
}
