package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"editmarket/internal/account"
	"editmarket/internal/auth"
	"editmarket/internal/config"
	"editmarket/internal/file"
	"editmarket/internal/infrastructure/logger"
	"editmarket/internal/infrastructure/mysql"
	"editmarket/internal/infrastructure/storage"
	"editmarket/internal/order"
	"editmarket/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := mysql.NewConnection(startupCtx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	if cfg.Database.AutoMigrate {
		if err := mysql.Migrate(startupCtx, db); err != nil {
			zapLogger.Fatal("applying schema", zap.Error(err))
		}
		zapLogger.Info("schema applied")
	}

	objectStorage, err := storage.NewS3Storage(startupCtx, cfg.Storage)
	if err != nil {
		zapLogger.Fatal("configuring object storage", zap.Error(err))
	}

	sessions := auth.NewSessions(
		auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		cfg.Auth.CookieName,
		cfg.Auth.CookieSecure,
		zapLogger,
	)

	var google *auth.GoogleProvider
	if cfg.Google.Enabled() {
		google = auth.NewGoogleProvider(cfg.Google)
	} else {
		zapLogger.Info("google login disabled")
	}

	accountCtrl := account.NewModule(db, sessions, auth.NewBcryptHasher(auth.DefaultBcryptCost), google, zapLogger)
	orderCtrl := order.NewModule(db, cfg.Order, zapLogger)
	fileCtrl := file.NewModule(db, objectStorage, zapLogger)

	router := server.NewRouter(sessions, accountCtrl, orderCtrl, fileCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
