package pkg

import (
	"net/http"

	"api/internal/api/models"
	"api/internal/api/policy"

	"github.com/gin-gonic/gin"
)

// GetUserID extracts the authenticated user id set by the auth middleware.
// Writes a 401 and returns false if it is missing.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return "", false
	}
	return userID.(string), true
}

// GetCaller builds the policy caller from the middleware context.
func GetCaller(c *gin.Context) (policy.Caller, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return policy.Caller{}, false
	}
	role, _ := c.Get("userRole")
	roleStr, _ := role.(string)
	return policy.Caller{ID: userID, Role: models.AppRole(roleStr)}, true
}
