package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/jpereira/minibank-backend/internal/adapter/httpapi"
	"github.com/jpereira/minibank-backend/internal/adapter/repository/postgres"
	"github.com/jpereira/minibank-backend/internal/config"
	"github.com/jpereira/minibank-backend/internal/usecase/dashboard"
	"github.com/jpereira/minibank-backend/internal/usecase/history"
	"github.com/jpereira/minibank-backend/internal/usecase/seeder"
	"github.com/jpereira/minibank-backend/internal/usecase/transfer"
)

const defaultSessionToken = "dev-token"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	transferService := transfer.NewService(accountRepo, transactionRepo)
	historyService := history.NewService(accountRepo, transactionRepo)
	dashboardService := dashboard.NewService(accountRepo)

	ctx := context.Background()

	if cfg.SeedDemo {
		demoSeeder := seeder.NewSeeder(accountRepo, transactionRepo)
		if err := demoSeeder.Seed(ctx); err != nil {
			slog.Error("failed to seed demo accounts", "error", err)
			os.Exit(1)
		}
		slog.Info("demo accounts ready", "user_id", seeder.DemoUserID)
	}

	tokens := cfg.SessionTokens
	if len(tokens) == 0 {
		tokens = map[string]uuid.UUID{defaultSessionToken: seeder.DemoUserID}
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, idempotency cache disabled", "error", err)
			rdb = nil
		}
	}

	server := httpapi.NewServer(transferService, historyService, dashboardService)
	router := httpapi.NewRouter(server, tokens, rdb)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("http server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	slog.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", "error", err)
	}

	slog.Info("http server stopped")
}
