package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mmoldabe-dev/subtrack/docs"
	"github.com/mmoldabe-dev/subtrack/internal/config"
	"github.com/mmoldabe-dev/subtrack/internal/currency"
	"github.com/mmoldabe-dev/subtrack/internal/handler"
	"github.com/mmoldabe-dev/subtrack/internal/repository"
	"github.com/mmoldabe-dev/subtrack/internal/scheduler"
	"github.com/mmoldabe-dev/subtrack/internal/service"
	"github.com/mmoldabe-dev/subtrack/internal/storage/postgres"
	"github.com/mmoldabe-dev/subtrack/pkg/logger"
)

//	@title			subtrack
//	@version		1.0
//	@description	Subscription tracker: billing normalization, dashboards and payment reminders.

//	@host		localhost:8080
//	@BasePath	/
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("cant load config: %s", err)
		os.Exit(1)
	}

	log := logger.SetupLogger(cfg.Logger.Level, cfg.Logger.Format, "subtrack")

	if err := postgres.RunMigrations(cfg, log); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := postgres.NewPostgres(cfg, log)
	if err != nil {
		log.Error("db init error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	conv, err := currency.Load(cfg.Currency.Base, cfg.Currency.RatesFile)
	if err != nil {
		log.Error("failed to load exchange rates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !conv.IsSupported(cfg.Currency.Default) {
		log.Error("default currency has no exchange rate", slog.String("currency", cfg.Currency.Default))
		os.Exit(1)
	}

	subRepo := repository.NewSubscriptionRepository(db, log)
	notifRepo := repository.NewNotificationRepository(db, log)

	subSvc := service.NewSubscriptionService(subRepo, conv, log)
	notifSvc := service.NewNotificationService(subRepo, notifRepo, log)

	router := handler.SetupRouter(
		handler.NewHandlerSubscription(subSvc, conv, cfg.Currency.Default, log),
		handler.NewHandlerNotification(notifSvc, log),
		log,
	)

	sweeper := scheduler.NewSweeper(notifRepo, cfg.Notifications.SweepCron, log)
	if err := sweeper.Start(); err != nil {
		log.Error("sweeper init error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting...", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen error", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", slog.String("error", err.Error()))
	}
	sweeper.Stop()

	log.Info("server stopped")
}
