package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pramod3245/Doc-agents/internal/api"
	"github.com/Pramod3245/Doc-agents/internal/api/handlers"
	"github.com/Pramod3245/Doc-agents/internal/cache"
	"github.com/Pramod3245/Doc-agents/internal/extractor"
	"github.com/Pramod3245/Doc-agents/internal/metrics"
	"github.com/Pramod3245/Doc-agents/internal/repository"
	"github.com/Pramod3245/Doc-agents/internal/service"
	"github.com/Pramod3245/Doc-agents/internal/storage"
	"github.com/Pramod3245/Doc-agents/internal/summarizer"
	"github.com/Pramod3245/Doc-agents/pkg/config"
	"github.com/Pramod3245/Doc-agents/pkg/logger"
	"github.com/Pramod3245/Doc-agents/pkg/postgres"

	"go.uber.org/zap"
)

// @title Doc Agents API
// @version 1.0
// @description Document management and summarization service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting document service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize file storage
	store, err := storage.NewLocalStore(cfg.Upload.Dir, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	projectRepo := repository.NewProjectRepository(db, appLogger)

	// Initialize the summarization backend and its wrapper
	backend, err := summarizer.NewBackend(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize summarizer backend", zap.Error(err))
	}
	if closer, ok := backend.(io.Closer); ok {
		defer closer.Close()
	}
	textSummarizer := summarizer.New(backend, cfg.Summarizer.WindowSize, cfg.Summarizer.Overlap, appLogger)

	summaryCache, err := cache.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize summary cache", zap.Error(err))
	}

	textExtractor := extractor.New(cfg.Extractor.MaxFileSize, appLogger)
	appMetrics := metrics.NewMetrics()

	// Initialize services
	userService := service.NewUserService(userRepo, appLogger)
	docService := service.NewDocumentService(docRepo, projectRepo, store, appLogger)
	projectService := service.NewProjectService(projectRepo, docRepo, userRepo, appLogger)
	summaryService := service.NewSummaryService(
		docRepo, projectRepo, store,
		textExtractor, textSummarizer, summaryCache,
		appMetrics, cfg, appLogger,
	)

	// Translation needs a generative backend; with any other backend it
	// reports itself unavailable.
	var generator service.Generator
	if g, ok := backend.(service.Generator); ok {
		generator = g
	}
	translationService := service.NewTranslationService(docRepo, store, textExtractor, generator, appLogger)

	// Initialize handlers
	docHandler := handlers.NewDocumentHandler(docService, summaryService, translationService, appLogger)
	projectHandler := handlers.NewProjectHandler(projectService, summaryService, appLogger)
	userHandler := handlers.NewUserHandler(userService, appLogger)

	// Uploads may be as large as the extractor accepts, plus form overhead
	bodyLimit := int(cfg.Extractor.MaxFileSize) + 1<<20
	if cfg.Extractor.MaxFileSize <= 0 {
		bodyLimit = 64 << 20
	}

	// Setup router
	app := api.SetupRouter(docHandler, projectHandler, userHandler, cfg.Upload.Dir, bodyLimit, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
