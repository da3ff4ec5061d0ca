package endpoints

import (
	"errors"
	"net/http"

	"api/internal/api/policy"
	"api/internal/api/service"
)

// statusFor maps service errors to HTTP statuses. Policy denials stay
// generic so callers cannot probe for row existence.
func statusFor(err error) int {
	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
