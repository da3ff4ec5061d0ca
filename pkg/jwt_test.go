package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "jean@example.com", "admin", testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jean@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "jean@example.com", "user", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", "jean@example.com", "user", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", testSecret, 30)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	refresh, err := GenerateRefreshToken("user-1", testSecret, 30)
	require.NoError(t, err)

	claims, err := ValidateToken(refresh, testSecret)
	require.NoError(t, err)
	// A refresh token carries no role or email.
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.Email)
}
