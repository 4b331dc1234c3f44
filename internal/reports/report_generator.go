// Package reports turns a snapshot into the published page and its
// companion files, and drives one complete generate-and-publish cycle.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// SnapshotRunner produces one snapshot of the given resorts
type SnapshotRunner interface {
	Run(ctx context.Context, resorts []models.ResortConfig) (*models.Snapshot, error)
}

// GenerationResult summarizes a completed generate-and-publish cycle
type GenerationResult struct {
	Status      string    `json:"status"`
	SnapshotID  string    `json:"snapshot_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Today       string    `json:"today"`
	Resorts     int       `json:"resorts"`
	Files       []string  `json:"files"`
	ReportURL   string    `json:"report_url"`
}

// ReportGenerator runs the pipeline, renders the files and publishes them
type ReportGenerator struct {
	runner       SnapshotRunner
	files        *FileGenerator
	orchestrator *StorageOrchestrator
	resorts      []models.ResortConfig
}

// NewReportGenerator creates a generator for a fixed resort list
func NewReportGenerator(runner SnapshotRunner, files *FileGenerator, orchestrator *StorageOrchestrator, resorts []models.ResortConfig) *ReportGenerator {
	return &ReportGenerator{
		runner:       runner,
		files:        files,
		orchestrator: orchestrator,
		resorts:      resorts,
	}
}

// GenerateCompleteReport handles one complete cycle. Any error leaves the
// previously published snapshot untouched.
func (rg *ReportGenerator) GenerateCompleteReport(ctx context.Context) (*GenerationResult, error) {
	start := time.Now()

	snapshot, err := rg.runner.Run(ctx, rg.resorts)
	if err != nil {
		return nil, fmt.Errorf("snapshot run failed: %w", err)
	}

	files, err := rg.files.GenerateAllFiles(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate files: %w", err)
	}

	// a run cancelled while rendering must not replace the last good snapshot
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot %s not published: %w", snapshot.ID, err)
	}

	if err := rg.orchestrator.StoreAllFiles(ctx, files); err != nil {
		return nil, fmt.Errorf("failed to store files: %w", err)
	}

	names := make([]string, 0)
	for name := range files.Files() {
		names = append(names, name)
	}
	sort.Strings(names)

	logger.Info("Snapshot generated", map[string]interface{}{
		"snapshot_id": snapshot.ID,
		"resorts":     len(snapshot.Resorts),
		"files":       len(names),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &GenerationResult{
		Status:      "success",
		SnapshotID:  snapshot.ID,
		GeneratedAt: snapshot.GeneratedAt,
		Today:       snapshot.Today,
		Resorts:     len(snapshot.Resorts),
		Files:       names,
		ReportURL:   "/",
	}, nil
}
