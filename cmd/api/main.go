package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolioCMS/cmd/app"
	"portfolioCMS/internal/config"
	"portfolioCMS/internal/logger"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logger.New(cfg.AppName, cfg.Env, cfg.LogLevel)
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer a.Close()

	if cfg.ActivateOnStart {
		report, err := a.Activator.Activate(context.Background())
		if err != nil {
			log.WithError(err).Fatal("activation failed")
		}
		log.WithField("warnings", len(report.Warnings)).Info("activation finished")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           a.Routes.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("server starting on %s (database %s)", srv.Addr, cfg.DB.DbNAME)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("server exited properly")
}
