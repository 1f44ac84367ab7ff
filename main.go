package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcpi/internal/config"
	"foodcpi/internal/logger"
	"foodcpi/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	defer logger.GetGlobalLogger().Sync()

	log.Printf("Starting Food CPI dashboard %s on port %s", config.GetVersion(), cfg.Port)
	log.Printf("Environment: %s", cfg.Environment)
	if cfg.DeploymentMode == config.DeploymentGCS {
		log.Printf("GCS Bucket: %s", cfg.GCSBucket)
	} else {
		log.Printf("Data Dir: %s", cfg.DataDir)
	}
	log.Printf("Dataset: %s", cfg.DataPath)

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	// Warm the dataset cache so the first page view is fast. Failures are
	// served as empty tables and can be retried with POST /reload.
	if table, err := srv.Loader.Load(ctx); err != nil {
		log.Printf("Dataset not loaded: %v", err)
	} else {
		log.Printf("Dataset loaded: %d rows, %d columns", table.Len(), len(table.Columns))
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
