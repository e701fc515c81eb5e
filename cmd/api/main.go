package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/routes"
	"todo-api/pkg/logger"
)

func main() {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Error(ctx, "database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info(ctx, "connected to MySQL", "host", cfg.DBHost, "database", cfg.DBName)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.SetupRouter(cfg, db),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(context.Background(), "server error", "error", err)
		os.Exit(1)
	}
	logger.Info(context.Background(), "server stopped")
}
