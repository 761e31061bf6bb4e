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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/existflow/medshare/internal/config"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/telemetry"
	"github.com/existflow/medshare/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	otel.SetTextMapPropagator(propagation.TraceContext{})
	if cfg.Trace {
		shutdown, err := telemetry.Init(os.Stdout)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Warn("Failed to flush telemetry", logger.F("error", err))
			}
		}()
	}

	srv, err := web.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	go func() {
		logger.Info("MedShare web starting",
			logger.F("addr", cfg.ListenAddr),
			logger.F("api_url", cfg.APIURL),
			logger.F("environment", cfg.Environment))
		if err := srv.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.F("error", err))
	}

	logger.Info("Server exited")
}
