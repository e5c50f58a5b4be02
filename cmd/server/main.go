package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pagetribe/sleepwell/internal"
	"github.com/pagetribe/sleepwell/internal/api"
	"github.com/pagetribe/sleepwell/internal/auth"
	"github.com/pagetribe/sleepwell/internal/config"
	"github.com/pagetribe/sleepwell/internal/service"
	"github.com/pagetribe/sleepwell/internal/storage"
)

func main() {
	cfg := config.Load()

	var zl *zap.Logger
	var err error
	if cfg.Env == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()
	logger := internal.NewZapLogger(zl.Sugar())

	if cfg.DBType == "file" {
		if _, err := os.Stat("data"); os.IsNotExist(err) {
			_ = os.Mkdir("data", 0755)
		}
	}

	repo, err := storage.NewRecordRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	clock := internal.NewZoneClock(cfg.Location())
	window := service.MorningWindow{StartHour: cfg.MorningStartHour, EndHour: cfg.MorningEndHour}
	app := api.NewApp(logger, repo, clock, window)

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(api.RequestIDMiddleware())

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware(provider, cfg))
	api.Register(protected, app)

	go func() {
		logger.Infof("Server running on :%s", cfg.Port)
		if err := r.Run(":" + cfg.Port); err != nil {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down, flushing storage")
	if err := repo.Close(); err != nil {
		logger.Errorf("failed to close storage: %v", err)
	}
}
