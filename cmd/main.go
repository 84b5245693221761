package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"portfolio/database"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/controllers"
	"portfolio/internal/filestore"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	"portfolio/pkg/logger"
	"portfolio/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Env vars may come from the environment directly.
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	manager := database.NewManager(cfg.Database, log)

	var redisClient *cache.RedisClient
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, serving without read cache")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	store := filestore.New(cfg.Content.DataDir, log)

	blogRepo := repository.NewCachedBlogRepository(manager, redisClient, log)
	projectRepo := repository.NewCachedProjectRepository(manager, redisClient, log)
	messageRepo := repository.NewMessageRepository(store, log)
	contentRepo := repository.NewContentRepository(store, log)

	// The unique slug indexes are the real uniqueness guarantee; create them
	// eagerly when the database is reachable. A cold database is not fatal
	// here, the first repository operation will retry the connection.
	if cfg.Database.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := blogRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("could not ensure blog indexes")
		}
		if err := projectRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("could not ensure project indexes")
		}
		cancel()
	} else {
		log.Warn().Msg("MONGODB_URI not set, blog and project endpoints will fail")
	}

	blogController := controllers.NewBlogController(blogRepo, log)
	projectController := controllers.NewProjectController(projectRepo, log)
	messageController := controllers.NewMessageController(messageRepo, log)
	contentController := controllers.NewContentController(contentRepo, log)
	uploadController := controllers.NewUploadController(cfg.Content.UploadDir, log)
	adminController := controllers.NewAdminController(cfg.Admin, log)
	healthController := controllers.NewHealthController(manager)

	if os.Getenv("ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	adminAuth := middleware.AdminAuth(cfg.Admin.JWTSecret)

	routes.RegisterBlogRoutes(router, blogController, adminAuth)
	routes.RegisterProjectRoutes(router, projectController, adminAuth)
	routes.RegisterMessageRoutes(router, messageController, adminAuth)
	routes.RegisterContentRoutes(router, contentController, adminAuth)
	routes.RegisterUploadRoutes(router, uploadController, adminAuth)
	routes.RegisterAdminRoutes(router, adminController)
	router.GET("/health", healthController.Health)
	router.Static("/uploads", cfg.Content.UploadDir)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := manager.Close(ctx); err != nil {
		log.Error().Err(err).Msg("database disconnect failed")
	}
}
