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

	"vanmitra-feedback/internal/api"
	"vanmitra-feedback/internal/app"
	"vanmitra-feedback/internal/config"
	"vanmitra-feedback/internal/logger"
)

func main() {
	cfg, err := config.Load() // loads .env
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load config")
	}

	log := logger.NewWithOptions(logger.Options{Environment: cfg.Environment, Level: cfg.Log.Level})
	log.WithField("service", "vanmitra-feedback").Info("starting service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build pipeline")
	}
	defer a.Close()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(a).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server terminated")
	}
}
