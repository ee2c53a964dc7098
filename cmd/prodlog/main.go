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

	"prodlog/internal/config"
	"prodlog/internal/lib/logger"
	"prodlog/internal/metrics"
	authservice "prodlog/internal/service/auth"
	"prodlog/internal/service/report"
	"prodlog/internal/storage"
	"prodlog/internal/storage/memory"
	"prodlog/internal/storage/mysql"
)

func main() {
	cfg := config.MustConfig()

	log := logger.New(cfg.Env, os.Stdout, "errors.log")

	store, closeStore, err := openStorage(*cfg)
	if err != nil {
		log.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	m := metrics.New()
	store = metrics.InstrumentStore(store, m)

	authService := authservice.New(store)
	if cfg.SeedDemoUsers {
		if err := authService.SeedDemoUsers(context.Background()); err != nil {
			log.Error("failed to seed demo users", slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Debug("demo users seeded")
	}

	reportService := report.New(store)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, store, authService, reportService, m),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

// openStorage выбирает хранилище по конфигу
func openStorage(cfg config.Config) (storage.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageMySQL:
		s, err := mysql.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}
