package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"api"
	"api/internal/api/handler/request"
	"api/internal/api/models"
	"api/internal/api/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIdentityTestDB(t *testing.T) {
	api.InitConfig("../../../.env.test")

	err := api.DB.AutoMigrate(&models.Identity{}, &models.Profile{}, &models.ActivityEvent{})
	require.NoError(t, err, "Failed to migrate identity tables")
}

func uniqueEmail() string {
	return fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
}

func cleanupIdentity(t *testing.T, id string) {
	if id != "" {
		api.DB.Unscoped().Where("id = ?", id).Delete(&models.Profile{})
		api.DB.Unscoped().Where("id = ?", id).Delete(&models.Identity{})
	}
}

func TestIdentity_Register(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()
	email := uniqueEmail()

	dto := request.RegisterDTO{
		Email:    email,
		Password: "testpassword123",
		FullName: "Jean Dupont",
	}

	result, err := service.Register(dto)
	require.NoError(t, err, "Failed to register")
	require.NotNil(t, result)
	defer cleanupIdentity(t, result.User.ID)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, email, result.User.Email)
	assert.Equal(t, "Jean Dupont", result.User.FullName)
	assert.Equal(t, string(models.RoleUser), result.User.Role)
}

func TestIdentity_Register_DuplicateEmail(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()
	email := uniqueEmail()

	dto := request.RegisterDTO{
		Email:    email,
		Password: "testpassword123",
		FullName: "Jean Dupont",
	}

	result, err := service.Register(dto)
	require.NoError(t, err)
	defer cleanupIdentity(t, result.User.ID)

	_, err = service.Register(dto)
	require.Error(t, err, "Should fail on duplicate email")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")
}

func TestIdentity_Login_WrongPassword(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()
	email := uniqueEmail()

	result, err := service.Register(request.RegisterDTO{
		Email:    email,
		Password: "testpassword123",
		FullName: "Jean Dupont",
	})
	require.NoError(t, err)
	defer cleanupIdentity(t, result.User.ID)

	_, err = service.Login(request.LoginDTO{Email: email, Password: "wrong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestIdentity_AdminAllowlistBootstrap(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()
	// The test env carries ADMIN_EMAILS=admin@example.com.
	require.Contains(t, service.config.AdminEmails, "admin@example.com",
		"test env must allowlist admin@example.com")

	// First authentication of an allowlisted email gets the admin role.
	identity := models.Identity{
		ID:    uuid.NewString(),
		Email: "admin@example.com",
		Actif: true,
	}
	defer cleanupIdentity(t, identity.ID)

	profile, err := service.bootstrapProfile(identity, "Site Admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, profile.Role)
}

func TestIdentity_BootstrapProfile_Idempotent(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()

	identity := models.Identity{
		ID:    uuid.NewString(),
		Email: uniqueEmail(),
		Actif: true,
	}
	defer cleanupIdentity(t, identity.ID)

	first, err := service.bootstrapProfile(identity, "First Name")
	require.NoError(t, err)

	// A second bootstrap for the same identity is a no-op: the existing
	// row wins, name included.
	second, err := service.bootstrapProfile(identity, "Other Name")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "First Name", second.FullName)
	assert.Equal(t, first.Role, second.Role)

	var count int64
	api.DB.Model(&models.Profile{}).Where("id = ?", identity.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestIdentity_BootstrapProfile_ConcurrentFirstLogins(t *testing.T) {
	setupIdentityTestDB(t)

	service := NewIdentityService()

	identity := models.Identity{
		ID:    uuid.NewString(),
		Email: uniqueEmail(),
		Actif: true,
	}
	defer cleanupIdentity(t, identity.ID)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.bootstrapProfile(identity, "Racer")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	api.DB.Model(&models.Profile{}).Where("id = ?", identity.ID).Count(&count)
	assert.EqualValues(t, 1, count, "concurrent first logins must not double-insert the profile")
}

func createTestProfile(t *testing.T, email string, role models.AppRole) models.Profile {
	profile := models.Profile{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: "Test User",
		Role:     role,
	}
	err := repo.NewProfileRepository().CreateIfAbsent(&profile)
	require.NoError(t, err)
	return profile
}

func cleanupTestProfile(t *testing.T, id string) {
	if id != "" {
		api.DB.Unscoped().Where("id = ?", id).Delete(&models.Profile{})
	}
}
