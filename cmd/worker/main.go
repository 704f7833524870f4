// Package main is the entry point for the zenbill maintenance worker.
// It periodically purges expired refresh tokens and stale idempotency
// records so the tables stay small without manual intervention.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"zenbill/internal/infrastructure/storage/postgres"
	"zenbill/internal/infrastructure/storage/postgres/auth_repo"
	"zenbill/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting zenbill maintenance worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	worker := NewMaintenanceWorker(
		auth_repo.NewTokenRepo(txManager),
		postgres.NewIdempotencyStore(txManager, getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour)),
		getEnvDuration("CLEANUP_INTERVAL", time.Hour),
		log,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// MaintenanceWorker runs periodic cleanup tasks.
type MaintenanceWorker struct {
	tokens      *auth_repo.TokenRepo
	idempotency *postgres.IdempotencyStore
	interval    time.Duration
	log         *logger.Logger
}

// NewMaintenanceWorker creates a maintenance worker.
func NewMaintenanceWorker(
	tokens *auth_repo.TokenRepo,
	idempotency *postgres.IdempotencyStore,
	interval time.Duration,
	log *logger.Logger,
) *MaintenanceWorker {
	return &MaintenanceWorker{
		tokens:      tokens,
		idempotency: idempotency,
		interval:    interval,
		log:         log.WithComponent("maintenance"),
	}
}

// Run executes cleanup on startup and then on every tick until the
// context is cancelled.
func (w *MaintenanceWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *MaintenanceWorker) cleanup(ctx context.Context) {
	taskCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	tokens, err := w.tokens.CleanupExpiredTokens(taskCtx)
	if err != nil {
		w.log.Errorw("refresh token cleanup failed", "error", err)
	} else if tokens > 0 {
		w.log.Infow("refresh tokens purged", "count", tokens)
	}

	keys, err := w.idempotency.CleanupExpired(taskCtx)
	if err != nil {
		w.log.Errorw("idempotency cleanup failed", "error", err)
	} else if keys > 0 {
		w.log.Infow("idempotency keys purged", "count", keys)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
