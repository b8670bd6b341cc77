package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpadapter "github.com/taskboard/taskboard/internal/adapter/http"
	"github.com/taskboard/taskboard/internal/adapter/persistence"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/service/logger"
	"github.com/taskboard/taskboard/internal/service/ratelimit"
	"github.com/taskboard/taskboard/internal/service/token"
	"github.com/taskboard/taskboard/internal/usecase"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Two injected log channels: technical and audit.
	techLog := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Channel: logger.ChannelTechnical,
	})
	auditLog := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Channel: logger.ChannelAudit,
	})

	techLog.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		techLog.Error(ctx, "Failed to open database", err, nil)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		techLog.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	techLog.Info(ctx, "Database connection established", nil)

	limiter, err := ratelimit.NewService(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
		Attempts: cfg.RateLimitAttempts,
		Window:   cfg.RateLimitWindow,
	})
	if err != nil {
		techLog.Error(ctx, "Failed to initialize rate limiter", err, nil)
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	userRepo := persistence.NewPostgresUserRepository(db)
	taskRepo := persistence.NewPostgresTaskRepository(db)
	auditRepo := persistence.NewPostgresAuditRepository(db)

	tokenService := token.NewService(cfg.SessionSecret, cfg.SessionTTL)

	taskUseCase := usecase.NewTaskUseCase(userRepo, taskRepo, auditRepo, techLog, auditLog)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, limiter, techLog)

	view := httpadapter.NewView()
	session := httpadapter.NewSessionMiddleware(tokenService, cfg.SessionCookie, cfg.SessionTTL)
	taskHandler := httpadapter.NewTaskHandler(taskUseCase, view)
	authHandler := httpadapter.NewAuthHandler(authUseCase, session, view)

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host:         cfg.ServerHost,
		Port:         cfg.ServerPort,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, taskHandler, authHandler, session, techLog)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			techLog.Error(ctx, "Server failed to start", err, nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		techLog.Error(ctx, "Server forced to shutdown", err, nil)
	}
	techLog.Info(ctx, "Server exited", nil)
}
