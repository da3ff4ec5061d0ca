package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type authHandler struct {
	identityService *service.IdentityService
	profileService  *service.ProfileService
	profileMapper   mapper.ProfileMapper
	validator       *validator.Validate
	logger          zerolog.Logger
	config          api.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		identityService: service.NewIdentityService(),
		profileService:  service.NewProfileService(),
		validator:       validator.New(),
		logger:          api.Logger,
		config:          api.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
	}
}

func (slf *authHandler) register(c *gin.Context) {
	var registerDTO request.RegisterDTO

	err := pkg.ParseAndValidate(c, &registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating register DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.identityService.Register(registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error registering account")
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, authResponse)
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO
	err := pkg.ParseAndValidate(c, &loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating login DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.identityService.Login(loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error logging in")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshTokenDTO
	err := pkg.ParseAndValidate(c, &refreshDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating refresh token DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.identityService.RefreshToken(refreshDTO.RefreshToken)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error refreshing token")
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) getMe(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	profile, err := slf.profileService.GetByID(caller, caller.ID)
	if err != nil {
		slf.logger.Error().Err(err).Str("userId", caller.ID).Msg("Error getting profile")
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.profileMapper.EntityToProfileResponse(profile))
}
