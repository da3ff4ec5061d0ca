package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/service"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type profileHandler struct {
	profileService *service.ProfileService
	profileMapper  mapper.ProfileMapper
	config         api.AppConfig
	logger         zerolog.Logger
}

func newProfileHandler() *profileHandler {
	return &profileHandler{
		profileService: service.NewProfileService(),
		config:         api.GetConfig(),
		logger:         api.Logger,
	}
}

func ProfileHandler(router *graceful.Graceful) {
	h := newProfileHandler()

	routes := router.Group("/api/v1/profiles")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.PUT("/me", h.updateName)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(h.config))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.PUT("/profiles/:id/role", h.updateRole)
	}
}

func (slf *profileHandler) getAll(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	profiles, err := slf.profileService.GetAll(caller)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: "Failed to retrieve profiles"})
		return
	}

	c.JSON(http.StatusOK, slf.profileMapper.EntitiesToProfileResponses(profiles))
}

func (slf *profileHandler) getByID(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	profile, err := slf.profileService.GetByID(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.profileMapper.EntityToProfileResponse(profile))
}

func (slf *profileHandler) updateName(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateProfile
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	profile, err := slf.profileService.UpdateName(caller, caller.ID, updateDTO.FullName)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.profileMapper.EntityToProfileResponse(profile))
}

// updateRole is the admin override from the profile policy. Route-level
// RequireRole is a convenience; the service re-checks through the policy
// engine.
func (slf *profileHandler) updateRole(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateRole
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	profile, err := slf.profileService.UpdateRole(caller, c.Param("id"), models.AppRole(updateDTO.Role))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.profileMapper.EntityToProfileResponse(profile))
}
