package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/venkateshtata/context-overflow-mcp/internal/app"
	"github.com/venkateshtata/context-overflow-mcp/internal/config"
	"github.com/venkateshtata/context-overflow-mcp/internal/database"
	"github.com/venkateshtata/context-overflow-mcp/internal/domain"
	"github.com/venkateshtata/context-overflow-mcp/internal/logging"
	"github.com/venkateshtata/context-overflow-mcp/internal/redis"
	"github.com/venkateshtata/context-overflow-mcp/internal/server"
	"github.com/venkateshtata/context-overflow-mcp/internal/voting"
)

func setupConfig() *config.Config {
	// Missing .env is fine; the environment may carry everything
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(cfg *config.Config) *redis.Client {
	client, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		slog.Error("Redis ping failed", "error", err)
		os.Exit(1)
	}

	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	// Redis is optional: without it votes are simply not throttled
	var redisClient *redis.Client
	var voteLimiter domain.VoteRateLimiter
	if cfg.RedisURL != "" {
		redisClient = setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()
		voteLimiter = redis.NewVoteRateLimiter(redisClient, clock, cfg.VoteBurst, cfg.VoteRatePerMinute)
	} else {
		slog.Warn("REDIS_URL not set, vote rate limiting disabled")
	}

	questionRepo := database.NewQuestionRepo(pool)
	answerRepo := database.NewAnswerRepo(pool)
	voteStorage := database.NewVoteStorage(pool)

	voteSvc := voting.NewService(voteStorage)
	appSvc := app.NewService(questionRepo, answerRepo, voteSvc)

	// Avoid a typed-nil interface for the redis health check
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, appSvc, voteLimiter, pool, redisClient)
	} else {
		srv = server.NewServer(cfg, appSvc, voteLimiter, pool, nil)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
