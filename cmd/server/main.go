package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/config"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/database"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/handlers"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/middleware"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/repository"
	"github.com/ryanstpierre/boulder.codes-sub000/internal/services"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	fallback := false
	if cfg.DatabaseURL == "" {
		if !cfg.AllowFallbackRegistration {
			log.Fatal().Msg("DATABASE_URL is not set")
		}
		fallback = true
		log.Warn().Msg("running without a database; registrations will receive fallback responses")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg)))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")

	if fallback {
		registrationHandler := handlers.NewRegistrationHandler(nil, nil, true)
		api.POST("/register-with-tags", registrationHandler.Submit)
		api.POST("/community/register-with-tags", registrationHandler.SubmitCommunity)
	} else {
		// Connect to database
		if err := database.Connect(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}

		// Run migrations
		if err := database.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatal().Err(err).Msg("failed to add indexes")
		}

		db := database.GetDB()
		tagRepo := repository.NewTagRepository(db)
		registrationRepo := repository.NewRegistrationRepository(db)

		tagService := services.NewTagService(tagRepo)
		registrationService := services.NewRegistrationService(registrationRepo)
		reconcileService := services.NewReconcileService(tagRepo, registrationRepo)

		tagHandler := handlers.NewTagHandler(tagService)
		adminTagHandler := handlers.NewAdminTagHandler(tagService)
		registrationHandler := handlers.NewRegistrationHandler(registrationService, reconcileService, false)

		// Public routes
		api.POST("/register-with-tags", registrationHandler.Submit)
		api.POST("/community/register-with-tags", registrationHandler.SubmitCommunity)
		api.GET("/tags", tagHandler.ListTags)
		api.GET("/tags/:id", tagHandler.GetTag)

		// Admin routes (shared-secret bearer token)
		admin := api.Group("", middleware.RequireAdmin(cfg.AdminToken))
		{
			admin.POST("/tags", tagHandler.CreateTag)
			admin.PUT("/tags", tagHandler.UpdateTag)
			admin.DELETE("/tags", tagHandler.DeleteTag)
			admin.POST("/admin/tags", adminTagHandler.HandleTagAction)
			admin.GET("/admin/registrations", registrationHandler.List)
		}
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}
