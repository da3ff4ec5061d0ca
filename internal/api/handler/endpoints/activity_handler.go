package endpoints

import (
	"api"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"api/pkg"
	"net/http"
	"strconv"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type activityHandler struct {
	activityService *service.ActivityService
	config          api.AppConfig
	logger          zerolog.Logger
}

func newActivityHandler() *activityHandler {
	return &activityHandler{
		activityService: service.NewActivityService(),
		config:          api.GetConfig(),
		logger:          api.Logger,
	}
}

func ActivityHandler(router *graceful.Graceful) {
	h := newActivityHandler()

	routes := router.Group("/api/v1/activity")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("/stats", h.stats)
	}
}

// stats aggregates real activity rows over the requested window (default 30
// days).
func (slf *activityHandler) stats(c *gin.Context) {
	caller, ok := pkg.GetCaller(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := slf.activityService.Stats(caller, days)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to aggregate activity")
		c.JSON(statusFor(err), response.APIError{Message: "Failed to retrieve activity stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
