package service

import (
	"testing"

	"api"
	"api/internal/api/models"
	"api/internal/api/policy"
	"api/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_CreateAndThread(t *testing.T) {
	setupJobTestDB(t)

	service := NewCommentService()

	author := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, author.ID)

	job := createTestJob(t, author.ID)
	defer cleanupJob(t, job.ID)
	file := createTestFile(t, job.ID, author.ID)

	root, err := service.Create(callerFor(author), file.ID, "first pass looks good", nil)
	require.NoError(t, err)
	assert.Equal(t, author.ID, root.UserID, "user_id must be forced to the caller")
	assert.Nil(t, root.ParentID)

	reply, err := service.Create(callerFor(author), file.ID, "agreed", pkg.ToPtr(root.ID))
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	comments, err := service.ListForFile(callerFor(author), file.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestComment_ParentMustBeOnSameFile(t *testing.T) {
	setupJobTestDB(t)

	service := NewCommentService()

	author := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, author.ID)

	job := createTestJob(t, author.ID)
	defer cleanupJob(t, job.ID)
	fileA := createTestFile(t, job.ID, author.ID)
	fileB := createTestFile(t, job.ID, author.ID)

	root, err := service.Create(callerFor(author), fileA.ID, "on file A", nil)
	require.NoError(t, err)

	_, err = service.Create(callerFor(author), fileB.ID, "cross-file reply", pkg.ToPtr(root.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent comment not found")
}

func TestComment_AuthorOnlyMutations(t *testing.T) {
	setupJobTestDB(t)

	service := NewCommentService()

	author := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, author.ID)
	other := createTestProfile(t, uniqueEmail(), models.RoleUser)
	defer cleanupTestProfile(t, other.ID)

	job := createTestJob(t, author.ID)
	defer cleanupJob(t, job.ID)
	file := createTestFile(t, job.ID, author.ID)

	comment, err := service.Create(callerFor(author), file.ID, "original", nil)
	require.NoError(t, err)

	_, err = service.Update(callerFor(other), comment.ID, "defaced")
	require.ErrorIs(t, err, policy.ErrForbidden)

	err = service.Delete(callerFor(other), comment.ID)
	require.ErrorIs(t, err, policy.ErrForbidden)

	updated, err := service.Update(callerFor(author), comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	// The edit leaves an audit row like every other mutation.
	var events int64
	api.DB.Model(&models.ActivityEvent{}).
		Where("user_id = ? AND action = ? AND resource_id = ?", author.ID, models.ActionUpdated, comment.ID).
		Count(&events)
	assert.EqualValues(t, 1, events)

	require.NoError(t, service.Delete(callerFor(author), comment.ID))

	comments, err := service.ListForFile(callerFor(author), file.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
