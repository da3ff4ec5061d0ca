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

type commentHandler struct {
	commentService *service.CommentService
	config         api.AppConfig
	logger         zerolog.Logger
}

func newCommentHandler() *commentHandler {
	return &commentHandler{
		commentService: service.NewCommentService(),
		config:         api.GetConfig(),
		logger:         api.Logger,
	}
}

func CommentHandler(router *graceful.Graceful) {
	h := newCommentHandler()

	files := router.Group("/api/v1/files")
	files.Use(middleware.AuthMiddleware(h.config))
	{
		files.GET("/:id/comments", h.listForFile)
		files.POST("/:id/comments", h.create)
	}

	comments := router.Group("/api/v1/comments")
	comments.Use(middleware.AuthMiddleware(h.config))
	{
		comments.PUT("/:id", h.update)
		comments.DELETE("/:id", h.delete)
	}
}

func (slf *commentHandler) listForFile(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	comments, err := slf.commentService.ListForFile(caller, c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentResponses(comments))
}

func (slf *commentHandler) create(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var createDTO request.CreateComment
	if err := pkg.ParseAndValidate(c, &createDTO); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating create comment DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	comment, err := slf.commentService.Create(caller, c.Param("id"), createDTO.Comment, createDTO.ParentID)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCommentResponse(*comment))
}

func (slf *commentHandler) update(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	var updateDTO request.UpdateComment
	if err := pkg.ParseAndValidate(c, &updateDTO); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	comment, err := slf.commentService.Update(caller, c.Param("id"), updateDTO.Comment)
	if err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentResponse(*comment))
}

func (slf *commentHandler) delete(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	if err := slf.commentService.Delete(caller, c.Param("id")); err != nil {
		c.JSON(statusFor(err), response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
