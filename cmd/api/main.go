package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/repository/postgres"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/database"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mail"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/upload"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Backend for the personal portfolio site: contact form delivery, blog posts and projects.
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting degrades to in-memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Upload Storage
	storage, err := upload.NewStorage(cfg.UploadDir)
	if err != nil {
		logger.Log.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	blogRepo := postgres.NewBlogRepository(dbPool)
	projectRepo := postgres.NewProjectRepository(dbPool)
	contactRepo := postgres.NewContactRepository(dbPool)

	// 7. Setup Email Dispatcher
	dispatcher := mail.NewDispatcher(mail.Config{
		ResendAPIKey: cfg.ResendAPIKey,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		From:         cfg.EmailFrom,
		To:           cfg.ContactEmailTo,
		SendTimeout:  time.Duration(cfg.SendTimeoutSeconds) * time.Second,
	})
	if !dispatcher.IsConfigured() {
		logger.Log.Warn("No email provider configured - contact form will be unavailable")
	} else {
		logger.Log.Info("Email dispatcher ready", "provider", dispatcher.Provider())
	}

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	contactUC := usecase.NewContactUsecase(dispatcher, contactRepo, validate)
	blogUC := usecase.NewBlogUsecase(blogRepo, storage, validate)
	projectUC := usecase.NewProjectUsecase(projectRepo, storage, validate)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		BlogUC:    blogUC,
		ProjectUC: projectUC,
		Config:    cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
