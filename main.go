package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"skisnap/internal/app"
	"skisnap/internal/config"
	"skisnap/internal/logger"
	"skisnap/internal/server"
)

func newHTTPServer(cfg *config.Config, srv *server.Server) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation runs inside POST /generate
		IdleTimeout:  60 * time.Second,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	logger.Info("Starting ski conditions service", map[string]interface{}{
		"version":          config.GetVersion(),
		"port":             cfg.Port,
		"environment":      cfg.Environment,
		"storage_mode":     cfg.StorageMode,
		"gcp_project":      cfg.GCPProjectID,
		"refresh_interval": cfg.RefreshInterval.String(),
	})

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize", err)
	}
	defer a.Close()

	srv := server.NewServer(a.Storage, a.Generator)
	httpServer := newHTTPServer(cfg, srv)

	go srv.RunScheduler(ctx, cfg.RefreshInterval)

	go func() {
		logger.Info("Server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
	_ = logger.GetGlobalLogger().Sync()
}
