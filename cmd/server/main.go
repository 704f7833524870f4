// Package main is the entry point for the zenbill API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zenbill/internal/domain/audit"
	"zenbill/internal/domain/auth"
	"zenbill/internal/domain/ewaybill"
	"zenbill/internal/infrastructure/cache"
	v1 "zenbill/internal/infrastructure/http/v1"
	"zenbill/internal/infrastructure/storage/postgres"
	"zenbill/internal/infrastructure/storage/postgres/auth_repo"
	"zenbill/internal/infrastructure/storage/postgres/document_repo"
	"zenbill/internal/metadata"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

// ewayBillRuleKey is the runtime setting holding the CEL expression
// that decides when an e-way bill is required.
const ewayBillRuleKey = "eway_bill.rule"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting zenbill server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)
	numeratorService := numerator.New(txManager)

	// --- Settings cache (LISTEN/NOTIFY backed) ---
	settings := cache.NewSettingsCache(pool.Unwrap())
	if err := settings.Start(ctx); err != nil {
		log.Fatalw("failed to start settings cache", "error", err)
	}
	defer settings.Stop()

	// --- JWT + Auth ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewRoleRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		txManager,
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- E-way bills with a runtime-swappable requirement rule ---
	ewayBillService, err := buildEWayBillService(txManager, numeratorService, settings, log)
	if err != nil {
		log.Fatalw("failed to build e-way bill service", "error", err)
	}

	// --- Audit trail ---
	auditService, err := audit.NewService(postgres.NewAuditRepository(txManager))
	if err != nil {
		log.Fatalw("failed to build audit service", "error", err)
	}

	// --- Idempotency ---
	var idempotency *postgres.IdempotencyStore
	if getEnv("IDEMPOTENCY_ENABLED", "true") == "true" {
		ttl := getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour)
		idempotency = postgres.NewIdempotencyStore(txManager, ttl)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:        pool,
		TxManager:   txManager,
		Logger:      log,
		Numerator:   numeratorService,
		JWTService:  jwtService,
		AuthService: authService,
		EWayBills:   ewayBillService,
		Metadata:    metadata.DefaultRegistry(),
		Audit:       auditService,
		Idempotency: idempotency,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// buildEWayBillService compiles the requirement rule from settings and
// re-compiles it whenever the setting changes, without a restart.
func buildEWayBillService(
	txManager *postgres.TxManager,
	num *numerator.Service,
	settings *cache.SettingsCache,
	log *logger.Logger,
) (*ewaybill.Service, error) {
	expr := settings.GetString(ewayBillRuleKey, ewaybill.DefaultRule)
	rules, err := ewaybill.NewRuleEngine(expr)
	if err != nil {
		log.Warnw("invalid e-way bill rule in settings, using default",
			"expr", expr,
			"error", err,
		)
		if rules, err = ewaybill.NewRuleEngine(ewaybill.DefaultRule); err != nil {
			return nil, err
		}
	}

	svc := ewaybill.NewService(document_repo.NewEWayBillRepo(txManager), rules, txManager, num)

	settings.OnInvalidation(func(key string) {
		if key != ewayBillRuleKey && key != "" {
			return
		}
		expr := settings.GetString(ewayBillRuleKey, ewaybill.DefaultRule)
		updated, err := ewaybill.NewRuleEngine(expr)
		if err != nil {
			log.Errorw("rejecting invalid e-way bill rule update",
				"expr", expr,
				"error", err,
			)
			return
		}
		svc.SetRules(updated)
		log.Infow("e-way bill rule updated", "expr", expr)
	})

	return svc, nil
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
