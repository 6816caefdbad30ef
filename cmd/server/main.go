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

	"github.com/citraoverseas/placement/api"
	dbfs "github.com/citraoverseas/placement/db"
	"github.com/citraoverseas/placement/internal/assistant"
	"github.com/citraoverseas/placement/internal/config"
	"github.com/citraoverseas/placement/internal/db"
	"github.com/citraoverseas/placement/internal/jobs"
	"github.com/citraoverseas/placement/internal/match"
	"github.com/citraoverseas/placement/internal/recommend"
	"github.com/citraoverseas/placement/internal/repository/sqlite"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting placement server version %s (built at %s)", version, buildTime)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	ctx := context.Background()

	// Open database connection and apply migrations
	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, conn, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	repo := sqlite.New(conn, logger)
	scorer := match.NewClient(cfg.Scorer.BaseURL, cfg.Scorer.Timeout)
	ranker := recommend.NewRanker(repo, repo, scorer, logger)

	gen, err := assistant.NewEngine(cfg.Assistant)
	if err != nil {
		log.Fatalf("Failed to create assistant engine: %v", err)
	}

	// Background queue for match-score snapshots
	queueRepo := jobs.NewRepository(conn)
	pool := jobs.NewWorkerPool(queueRepo, map[string]jobs.Handler{
		jobs.TypeScoreSnapshot: jobs.ScoreSnapshotHandler(repo, scorer),
	}, logger, cfg.Workers)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	pool.Start(workerCtx)

	handler := api.SetupRoutes(cfg, version, buildTime, api.Deps{
		Repo:        repo,
		Recommender: ranker,
		Assistant:   gen,
		Queue:       pool,
	})

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
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Stop workers before closing the database they read from
	cancelWorkers()
	pool.Stop()

	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
