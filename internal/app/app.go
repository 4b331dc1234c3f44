// Package app wires configuration into a ready-to-run snapshot generator.
// The HTTP service and the one-shot runner share it.
package app

import (
	"context"
	"fmt"

	"skisnap/internal/charts"
	"skisnap/internal/config"
	"skisnap/internal/fetchers"
	"skisnap/internal/llm"
	"skisnap/internal/logger"
	"skisnap/internal/mocks"
	"skisnap/internal/models"
	"skisnap/internal/pipeline"
	"skisnap/internal/reports"
	"skisnap/internal/storage"
)

// App holds the long-lived components built from configuration
type App struct {
	Config    *config.Config
	Resorts   []models.ResortConfig
	Storage   storage.StorageClient
	Generator *reports.ReportGenerator
}

// New builds every component. A missing or malformed resort list fails here,
// before any fetch.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	resorts, err := config.LoadResorts(cfg.ResortsFile)
	if err != nil {
		return nil, err
	}

	var (
		source fetchers.TextFetcher
		writer llm.DigestWriter
	)
	if cfg.MockupMode {
		mockService, err := mocks.NewMockService(cfg.MocksDir)
		if err != nil {
			return nil, fmt.Errorf("mockup mode: %w", err)
		}
		logger.Info("Mockup mode enabled", map[string]interface{}{"mocks_dir": cfg.MocksDir})
		source, writer = mockService, mockService
	} else {
		source = fetchers.NewClient(fetchers.ClientOptions{
			Timeout:      cfg.FetchTimeout,
			Retries:      cfg.FetchRetries,
			MaxRedirects: cfg.MaxRedirects,
			UserAgent:    "skisnap/" + config.GetVersion(),
		})
		if cfg.OpenAIAPIKey != "" {
			writer = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		}
	}

	p, err := pipeline.New(fetchers.NewDataFetcher(source, cfg.ForecastURL, cfg.AvalancheURL), pipeline.Options{
		Workers:         cfg.Workers,
		DefaultTimezone: cfg.DefaultTimezone,
	})
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStorageClient(ctx, storage.DeploymentMode(cfg.StorageMode), cfg)
	if err != nil {
		return nil, err
	}

	files := reports.NewFileGenerator(reports.NewHTMLBuilder(), charts.NewChartGenerator(), llm.NewDigester(writer))
	generator := reports.NewReportGenerator(p, files, reports.NewStorageOrchestrator(store), resorts)

	logger.Info("Snapshot generator ready", map[string]interface{}{
		"resorts":      len(resorts),
		"storage_mode": cfg.StorageMode,
		"llm_digest":   writer != nil,
	})

	return &App{
		Config:    cfg,
		Resorts:   resorts,
		Storage:   store,
		Generator: generator,
	}, nil
}

// Close releases the storage client
func (a *App) Close() error {
	return a.Storage.Close()
}
