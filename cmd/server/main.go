package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/api"
	dbfs "github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/config"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/db"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/intake"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/repository/sqlstore"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/internal/validation"
	"github.com/i-soumya18/SVC-Fall-25-SWE-Intern-Challenge/pkg/reddit"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	var envFile = flag.String("env-file", ".env", "Optional .env file loaded before the config")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	reddit.SetLogger(logger)

	log.Printf("Starting FairDataUse server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection
	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	database, err := db.New(dbCtx, cfg.Database.Driver, cfg.Database.DSN, &db.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		dbCancel()
		log.Fatalf("Failed to open DB: %v", err)
	}
	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(dbCtx, database, dbfs.Migrations); err != nil {
			dbCancel()
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}
	dbCancel()

	validator, err := validation.New()
	if err != nil {
		log.Fatalf("Failed to load payload schemas: %v", err)
	}

	if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
		logger.Warn("reddit credentials not configured; intake submissions will be rejected")
	}
	verifier := reddit.NewVerifier(cfg.Reddit, nil)

	store := sqlstore.New(database, logger)
	svc := intake.NewService(store, store, verifier, validator, logger)

	handler := api.SetupRoutes(cfg, version, buildTime, svc)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := verifier.Close(); err != nil {
		log.Printf("Error closing Reddit verifier: %v", err)
	}

	// Close database connection
	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
