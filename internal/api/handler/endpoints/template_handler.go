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
	"github.com/rs/zerolog"
)

type templateHandler struct {
	templateService *service.TemplateService
	templateMapper  mapper.TemplateMapper
	config          api.AppConfig
	logger          zerolog.Logger
}

func newTemplateHandler() *templateHandler {
	return &templateHandler{
		templateService: service.NewTemplateService(),
		config:          api.GetConfig(),
		logger:          api.Logger,
	}
}

func TemplateHandler(router *graceful.Graceful) {
	h := newTemplateHandler()

	routes := router.Group("/api/v1/templates")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

// getAll lists public templates plus the caller's own, optionally filtered
// by category.
func (slf *templateHandler) getAll(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	templates, err := slf.templateService.ListVisible(caller, c.Query("category"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: "Failed to retrieve templates"})
		return
	}

	c.JSON(http.StatusOK, slf.templateMapper.ToTemplateResponses(templates))
}

func (slf *templateHandler) getByID(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	template, err := slf.templateService.GetByID(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.templateMapper.ToTemplateResponse(*template))
}

func (slf *templateHandler) create(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var createDTO request.CreateTemplate
	if err := pkg.ParseAndValidate(c, &createDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create template DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	template, err := slf.templateService.Create(caller, slf.templateMapper.CreateTemplate(createDTO))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, slf.templateMapper.ToTemplateResponse(*template))
}

func (slf *templateHandler) update(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateTemplate
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	template, err := slf.templateService.Update(caller, c.Param("id"), slf.templateMapper.UpdateTemplate(updateDTO))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.templateMapper.ToTemplateResponse(*template))
}

func (slf *templateHandler) delete(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	if err := slf.templateService.Delete(caller, c.Param("id")); err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}
