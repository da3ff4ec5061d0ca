package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/internal/api/storage"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type jobHandler struct {
	jobService *service.JobService
	jobMapper  mapper.JobMapper
	config     api.AppConfig
	logger     zerolog.Logger
}

func newJobHandler(store *storage.ObjectStore) *jobHandler {
	return &jobHandler{
		jobService: service.NewJobService(store),
		jobMapper:  mapper.NewJobMapper(),
		config:     api.GetConfig(),
		logger:     api.Logger,
	}
}

func JobHandler(router *graceful.Graceful, store *storage.ObjectStore) {
	h := newJobHandler(store)

	routes := router.Group("/api/v1/jobs")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

// getAll returns all jobs visible to the current user
func (slf *jobHandler) getAll(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	entities, err := slf.jobService.FindAllForUser(caller)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to get jobs")
		c.JSON(statusFor(err), response.APIError{Message: "Failed to retrieve jobs"})
		return
	}

	c.JSON(http.StatusOK, slf.jobMapper.ToJobResponses(entities))
}

// getByID returns a single job with its files
func (slf *jobHandler) getByID(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	job, err := slf.jobService.FindByID(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.jobMapper.ToJobResponseWithFiles(*job))
}

func (slf *jobHandler) create(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var createDTO request.CreateJob
	if err := pkg.ParseAndValidate(c, &createDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Create(caller, slf.jobMapper.CreateJob(createDTO))
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, slf.jobMapper.ToJobResponse(*job))
}

func (slf *jobHandler) update(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateJob
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating update job DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Update(caller, c.Param("id"), slf.jobMapper.PatchJob(updateDTO))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.jobMapper.ToJobResponse(*job))
}

func (slf *jobHandler) delete(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	if err := slf.jobService.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
