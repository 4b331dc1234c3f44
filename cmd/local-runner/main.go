// Command local-runner generates and publishes one snapshot, then exits.
// It exits non-zero when configuration is invalid or the run fails; the
// previously published snapshot is left untouched in that case.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skisnap/internal/app"
	"skisnap/internal/config"
	"skisnap/internal/logger"
)

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Generator.GenerateCompleteReport(ctx)
	if err != nil {
		return err
	}

	summary, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Println(string(summary))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Error("Snapshot generation failed", err)
		stop()
		os.Exit(1)
	}
}
