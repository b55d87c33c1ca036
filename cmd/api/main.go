package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"launchquote/internal/app"
	"launchquote/internal/config"
	"launchquote/internal/pkg/logger"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lggr, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lggr.Sync() }()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg, lggr)
	if err != nil {
		lggr.Errorw("Startup failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = a.Close() }()

	if cfg.AutoMigrate {
		if err := a.Migrate(); err != nil {
			lggr.Errorw("Migration failed", "err", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.Sessions.RunJanitor(ctx, sweepInterval, lggr.Named("wizard"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lggr.Infow("Server starting", "port", cfg.Port, "env", cfg.AppEnv, "email_enabled", cfg.EmailEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lggr.Errorw("Server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	lggr.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lggr.Errorw("Graceful shutdown failed", "err", err)
	}
}
