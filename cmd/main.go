package main

import (
	"api"
	"api/internal/api/handler/endpoints"
	"api/internal/api/models"
	"api/internal/api/storage"
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	api.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if api.GetConfig().Mode == "dev" {
		if err := api.DB.AutoMigrate(
			&models.Identity{},
			&models.Profile{},
			&models.Job{},
			&models.JobFile{},
			&models.Comment{},
			&models.FileVersion{},
			&models.Template{},
			&models.ActivityEvent{},
		); err != nil {
			api.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		api.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(api.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store, err := storage.NewObjectStore()
	if err != nil {
		api.Logger.Fatal().Err(err).Msg("Failed to initialize object store")
	}

	// Orphaned blobs left by crashes between the metadata delete and the
	// storage remove are swept in the background.
	reconciler := storage.NewReconciler(store, 10*time.Minute)
	go reconciler.Run(ctx)
	api.Logger.Info().Msg("Blob reconciler started")

	initAPI(router, store)

	api.Logger.Debug().Msgf("Starting ASSET HUB API on port %s", api.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		api.Logger.Fatal().Msg(err.Error())
		panic(err)
	}

}

func initAPI(router *graceful.Graceful, store *storage.ObjectStore) {
	endpoints.AuthHandler(router)
	endpoints.ProfileHandler(router)
	endpoints.JobHandler(router, store)
	endpoints.FileHandler(router, store)
	endpoints.CommentHandler(router)
	endpoints.TemplateHandler(router)
	endpoints.ActivityHandler(router)
}
