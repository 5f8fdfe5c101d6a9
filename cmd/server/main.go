package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/romshelf-go/api"
	"github.com/yourusername/romshelf-go/internal/app"
	"github.com/yourusername/romshelf-go/internal/infrastructure"
	"github.com/yourusername/romshelf-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file")

func main() {
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting romshelf server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.Strings("sources", config.Catalog.Sources))

	// Initialize session record repository
	repo, err := infrastructure.NewSQLiteRecordRepository(config.Session.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	// Wire up the catalog engine
	notifier := infrastructure.NewStatusNotifier(log)
	fetcher := infrastructure.NewHTTPSourceFetcher(config.Catalog.BaseURL, config.Catalog.RequestTimeout, log)
	ranker := app.NewRanker(config.Catalog.PriorityTitles)
	store := app.NewCatalogStore(ranker, config.Catalog.PageSize)
	tracker := app.NewSessionTracker(repo, log)
	loader := app.NewCatalogLoader(fetcher, store, ranker, notifier, &config.Catalog, log)

	// Kick off the initial load in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader.Start(ctx)

	// Setup HTTP router
	router := api.SetupRouter(store, loader, tracker, ranker, notifier, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
