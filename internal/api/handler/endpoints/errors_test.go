package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"api/internal/api/policy"
	"api/internal/api/service"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusFor(policy.ErrUnauthenticated))
	assert.Equal(t, http.StatusForbidden, statusFor(policy.ErrForbidden))

	// Wrapped sentinels keep their message but still map by errors.Is.
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("job %w", service.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("an account with this email %w", service.ErrConflict)))

	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("connection reset")))
}
