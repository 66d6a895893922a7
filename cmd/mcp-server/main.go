package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/config"
	"github.com/apresai/vidblueprint/internal/mcpserver"
	"github.com/apresai/vidblueprint/internal/observability"
)

const version = "1.0.0"

func main() {
	_ = config.LoadDotEnv(".env")

	cfg, err := config.Load(os.Getenv("BLUEPRINT_CONFIG"))
	if err != nil {
		observability.InitLogger("info").Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.InitLogger(cfg.Log.Level)

	logger.Info("Blueprint MCP Server starting...", "version", version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing.ServiceName, version)
		if err != nil {
			logger.Warn("Failed to init tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Error("Tracer shutdown error", "error", err)
				}
			}()
		}
	}

	var cat mcpserver.Catalog
	if cfg.Catalog.Enabled() {
		c, err := catalog.NewFromConfig(ctx, catalog.Options{
			TableName:  cfg.Catalog.TableName,
			Bucket:     cfg.Catalog.Bucket,
			CDNBaseURL: cfg.Catalog.CDNBaseURL,
			Region:     cfg.Catalog.Region,
		}, logger)
		if err != nil {
			logger.Error("Failed to create catalog", "error", err)
			os.Exit(1)
		}
		cat = c
	} else {
		logger.Warn("Catalog not configured, blueprints are kept in memory only")
	}

	srv := mcpserver.New(mcpserver.ConfigFrom(cfg, version), cat, logger)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		logger.Info("Shutdown signal received, draining requests...")
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	<-stopped
	logger.Info("Shutdown complete")
}
