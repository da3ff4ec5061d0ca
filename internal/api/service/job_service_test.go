package service

import (
	"testing"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJobTestDB(t *testing.T) {
	api.InitConfig("../../../.env.test")

	err := api.DB.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.JobFile{},
		&models.Comment{},
		&models.FileVersion{},
		&models.ActivityEvent{},
	)
	require.NoError(t, err, "Failed to migrate job-related tables")
}

func cleanupJob(t *testing.T, id string) {
	if id != "" {
		api.DB.Unscoped().Where("job_id = ?", id).Delete(&models.JobFile{})
		api.DB.Unscoped().Where("id = ?", id).Delete(&models.Job{})
	}
}

func callerFor(p models.Profile) policy.Caller {
	return policy.Caller{ID: p.ID, Role: p.Role}
}

// ============ Job CRUD Tests ============

func TestJob_Create(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)

	job := models.Job{
		Name:        "Acme rebrand",
		Description: "Logo refresh for Acme",
		ClientName:  "Acme",
		Priority:    models.PriorityHigh,
	}

	created, err := service.Create(callerFor(owner), job)
	require.NoError(t, err, "Failed to create job")
	require.NotNil(t, created)
	require.NotEmpty(t, created.ID)
	defer cleanupJob(t, created.ID)

	assert.Equal(t, "Acme rebrand", created.Name)
	assert.Equal(t, "Acme", created.ClientName)
	assert.Equal(t, models.PriorityHigh, created.Priority)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, owner.ID, created.CreatedBy, "created_by must be forced to the caller")
}

func TestJob_Create_OwnerForcedToCaller(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	// A client claiming someone else's identity in the payload is ignored.
	created, err := service.Create(callerFor(owner), models.Job{
		Name:      "Spoofed",
		CreatedBy: other.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	assert.Equal(t, owner.ID, created.CreatedBy)
}

func TestJob_Update_NonOwnerForbidden(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	created, err := service.Create(callerFor(owner), models.Job{Name: "Owned job"})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	// Non-owner cannot complete the job, whatever the UI showed them.
	_, err = service.Update(callerFor(other), created.ID, map[string]any{"status": models.StatusCompleted})
	require.ErrorIs(t, err, policy.ErrForbidden)

	// The owner can.
	updated, err := service.Update(callerFor(owner), created.ID, map[string]any{"status": models.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
}

func TestJob_Update_AbsentLooksForbidden(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)

	// Absent and inaccessible rows are indistinguishable on mutation.
	_, err := service.Update(callerFor(owner), "00000000-0000-0000-0000-000000000000",
		map[string]any{"status": models.StatusCompleted})
	assert.ErrorIs(t, err, policy.ErrForbidden)
}

func TestJob_Update_CannotMoveOwnership(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	created, err := service.Create(callerFor(owner), models.Job{Name: "Owned job"})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	updated, err := service.Update(callerFor(owner), created.ID, map[string]any{
		"name":       "Renamed",
		"created_by": other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, owner.ID, updated.CreatedBy, "ownership never moves through update")
}

func TestJob_FindByID_NotFound(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	owner := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, owner.ID)

	_, err := service.FindByID(callerFor(owner), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "job not found", err.Error())
}

func TestJob_Unauthenticated(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)

	_, err := service.FindAllForUser(policy.Caller{})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)

	_, err = service.Create(policy.Caller{}, models.Job{Name: "nope"})
	assert.ErrorIs(t, err, policy.ErrUnauthenticated)
}
