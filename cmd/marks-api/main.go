package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-marks-api/api/swagger"
	"github.com/noah-isme/exam-marks-api/internal/handler"
	"github.com/noah-isme/exam-marks-api/internal/repository"
	"github.com/noah-isme/exam-marks-api/internal/router"
	"github.com/noah-isme/exam-marks-api/internal/service"
	"github.com/noah-isme/exam-marks-api/pkg/cache"
	"github.com/noah-isme/exam-marks-api/pkg/config"
	"github.com/noah-isme/exam-marks-api/pkg/database"
	"github.com/noah-isme/exam-marks-api/pkg/export"
	"github.com/noah-isme/exam-marks-api/pkg/logger"
	"github.com/noah-isme/exam-marks-api/pkg/validation"
)

// @title Exam Marks API
// @version 1.0.0
// @description Student exam marks administration and result lookup
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logr.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, lookup cache disabled", zap.Error(err))
	}

	metricsSvc := service.NewMetricsService()
	markRepo := repository.NewMarkRepository(db)

	var cachePinger service.Pinger
	cacheRepo := repository.NewCacheRepository(redisClient, "marks", logr)
	if redisClient != nil {
		cachePinger = cacheRepo
		defer cacheRepo.Close() //nolint:errcheck
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Lookup.CacheTTL, logr, redisClient != nil)

	markSvc := service.NewMarkService(markRepo, cacheSvc, metricsSvc, validation.New(), logr, service.MarkServiceConfig{
		LookupCacheTTL: cfg.Lookup.CacheTTL,
	})
	browseSvc := service.NewBrowseService(markSvc, logr)
	reportSvc := service.NewReportService(markSvc, export.ReportHeader{
		SchoolName: cfg.Report.SchoolName,
		Title:      cfg.Report.Title,
		FontPath:   cfg.Report.FontPath,
	}, logr, nil, nil)
	authSvc := service.NewAuthService(service.AuthConfig{
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
		TokenSecret:  cfg.Admin.TokenSecret,
		TokenTTL:     cfg.Admin.TokenTTL,
		Issuer:       cfg.Admin.TokenIssuer,
	}, metricsSvc, logr)
	healthSvc := service.NewHealthService(markRepo, cachePinger, 0, logr)

	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Marks:   handler.NewMarkHandler(markSvc, browseSvc, reportSvc),
		Lookup:  handler.NewLookupHandler(markSvc, reportSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc, healthSvc),
	}
	engine := router.Setup(cfg, logr, authSvc, metricsSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
