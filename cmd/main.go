package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/yakoovad/mergington-activities/internal/api"
	"github.com/yakoovad/mergington-activities/internal/config"
	"github.com/yakoovad/mergington-activities/internal/repository"
	"github.com/yakoovad/mergington-activities/internal/service"
	"github.com/yakoovad/mergington-activities/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application",
		zap.String("instance_id", uuid.NewString()))

	activityRepo := repository.NewMemoryActivityRepository(repository.DefaultActivities())

	activities := service.NewActivityService().WithActivityRepo(activityRepo)

	healthChecker := api.MustNewHealthChecker(health.Config{
		Name:      "activity-directory",
		Timeout:   time.Second,
		SkipOnErr: false,
		Check: func(ctx context.Context) error {
			_, err := activityRepo.List(ctx)
			return err
		},
	})

	e := echo.New()
	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeout) * time.Second

	handler := api.NewHandler(logger).
		WithActivityService(activities).
		WithHealthChecker(healthChecker).
		WithStaticDir(cfg.Server.StaticDir)

	handler.RegisterRoutes(e)

	go func() {
		logger.Info("server starting", zap.String("address", cfg.Server.Address()))
		if err := e.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
