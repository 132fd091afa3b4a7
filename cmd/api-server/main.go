package main

import (
	"os"

	"github.com/bookworm-labs/alexandria/internal/auth"
	"github.com/bookworm-labs/alexandria/internal/catalog"
	"github.com/bookworm-labs/alexandria/internal/health"
	"github.com/bookworm-labs/alexandria/internal/library"
	"github.com/bookworm-labs/alexandria/internal/notify"
	"github.com/bookworm-labs/alexandria/internal/stats"
	"github.com/bookworm-labs/alexandria/pkg/config"
	"github.com/bookworm-labs/alexandria/pkg/database"
	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (optional)
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(logger.LogLevel(cfg.LogLevel), cfg.LogFormat == "json", os.Stdout)
	log := logger.GetLogger().WithContext("component", "api_server")
	log.Info("starting_api_server", "app", cfg.AppName)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	if err := database.InitDatabase(cfg.DBPath); err != nil {
		log.Error("failed_to_initialize_database", "error", err.Error(), "path", cfg.DBPath)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "your-secret-key-change-this-in-production"
		log.Warn("using_default_jwt_secret", "message", "Set JWT_SECRET environment variable in production!")
	}

	// Seed the librarian account once; never overwrites an existing one.
	if err := auth.EnsureLibrarian(database.DB, cfg.LibrarianUsername, cfg.LibrarianPassword); err != nil {
		log.Error("failed_to_seed_librarian", "error", err.Error())
		os.Exit(1)
	}

	hub := notify.NewHub(logger.GetLogger().WithContext("component", "notify"))
	go hub.Run()
	defer hub.Stop()

	store := library.NewStore(database.DB)
	source := catalog.NewGoogleBooksSource(cfg.CatalogBaseURL)

	authHandler := auth.NewHandler(database.DB, cfg.JWTSecret)
	libraryHandler := library.NewHandler(store, source, hub)
	statsHandler := stats.NewHandler(store)
	notifyHandler := notify.NewHandler(hub)
	healthHandler := health.NewHandler()
	metricsHandler := metrics.NewHandler()

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metricsHandler.Metrics)
	router.GET("/ws", notifyHandler.Serve)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	api := router.Group("/api")
	{
		// Public reads
		api.GET("/library", libraryHandler.GetLibrary)
		api.GET("/books/:id", libraryHandler.GetBook)
		api.GET("/stats", statsHandler.GetStats)

		// Identified-session writes and catalog access
		protected := api.Group("")
		protected.Use(authHandler.Middleware())
		{
			protected.GET("/catalog/search", libraryHandler.SearchCatalog)
			protected.POST("/library/:google_books_id", libraryHandler.ImportBook)
			protected.POST("/books/:id/finish", libraryHandler.FinishBook)
			protected.DELETE("/books/:id", libraryHandler.DeleteBook)
		}
	}

	log.Info("api_server_listening", "port", cfg.HTTPPort)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Error("failed_to_start_api_server", "error", err.Error())
		os.Exit(1)
	}
}
