package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yusufkecer/workout-recorder-backend/internal/config"
	"github.com/yusufkecer/workout-recorder-backend/internal/db"
	"github.com/yusufkecer/workout-recorder-backend/internal/handler"
	"github.com/yusufkecer/workout-recorder-backend/internal/logger"
	"github.com/yusufkecer/workout-recorder-backend/internal/repository"
	"github.com/yusufkecer/workout-recorder-backend/internal/security"
	"github.com/yusufkecer/workout-recorder-backend/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DSN()
	if err != nil {
		log.Fatal("invalid database configuration", zap.Error(err))
	}

	database, err := db.Connect(ctx, dsn, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatal("token manager setup failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(database)
	recordRepo := repository.NewRecordRepository(database)

	userService, err := service.NewUserService(userRepo, security.NewPasswordHasher(cfg.BcryptCost), log)
	if err != nil {
		log.Fatal("user service setup failed", zap.Error(err))
	}
	recordService := service.NewRecordService(recordRepo, cfg.MaxPageLimit, log)

	router := handler.NewRouter(handler.Deps{
		Config:  cfg,
		Users:   userService,
		Records: recordService,
		Tokens:  tokens,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
