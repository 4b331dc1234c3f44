// Package pipeline sequences fetch, aggregate and snapshot assembly for every
// configured resort, isolating source failures per resort and per stage.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"skisnap/internal/aggregate"
	"skisnap/internal/fetchers"
	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// Options tunes a Pipeline
type Options struct {
	// Workers bounds how many resorts are processed at once
	Workers int
	// DefaultTimezone applies to resorts without their own timezone
	DefaultTimezone string
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Pipeline produces snapshots. It keeps no state between runs.
type Pipeline struct {
	fetcher    *fetchers.DataFetcher
	workers    int
	defaultTZ  string
	defaultLoc *time.Location
	now        func() time.Time
}

// New creates a pipeline reading through the given fetchers
func New(fetcher *fetchers.DataFetcher, opts Options) (*Pipeline, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DefaultTimezone == "" {
		opts.DefaultTimezone = "UTC"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	loc, err := time.LoadLocation(opts.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("default timezone %q: %w", opts.DefaultTimezone, err)
	}

	return &Pipeline{
		fetcher:    fetcher,
		workers:    opts.Workers,
		defaultTZ:  opts.DefaultTimezone,
		defaultLoc: loc,
		now:        opts.Now,
	}, nil
}

// avalancheData is the once-per-run bulletin fetch shared read-only by all resorts
type avalancheData struct {
	bulletins []models.AvalancheBulletin
	ok        bool
}

// Run processes every resort and assembles the snapshot. Source failures
// never fail the run; only a cancelled context does.
func (p *Pipeline) Run(ctx context.Context, resorts []models.ResortConfig) (*models.Snapshot, error) {
	runID := uuid.NewString()
	now := p.now()
	start := time.Now()

	logger.Info("Starting snapshot run", map[string]interface{}{
		"run_id":  runID,
		"resorts": len(resorts),
		"workers": p.workers,
	})

	avalanche := p.fetchAvalanche(ctx, runID)

	views := make([]models.ResortView, len(resorts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, resort := range resorts {
		g.Go(func() error {
			views[i] = p.runResort(gctx, runID, resort, now, avalanche)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("Snapshot run cancelled", map[string]interface{}{
			"run_id": runID,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("snapshot run %s: %w", runID, err)
	}

	snapshot := &models.Snapshot{
		ID:          runID,
		GeneratedAt: now.UTC(),
		Today:       aggregate.Today(now, p.defaultLoc),
		Resorts:     views,
	}
	if avalanche.ok {
		a := aggregate.Avalanche(avalanche.bulletins, nil)
		snapshot.Avalanche = &a
	}

	logger.Info("Snapshot run completed", map[string]interface{}{
		"run_id":      runID,
		"resorts":     len(views),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return snapshot, nil
}

func (p *Pipeline) fetchAvalanche(ctx context.Context, runID string) avalancheData {
	if p.fetcher.Avalanche == nil || p.fetcher.Avalanche.URL() == "" {
		return avalancheData{}
	}
	bulletins, err := p.fetcher.Avalanche.Fetch(ctx)
	if err != nil {
		logger.Warn("Avalanche bulletin unavailable", map[string]interface{}{
			"run_id": runID,
			"error":  err.Error(),
		})
		return avalancheData{}
	}
	logger.Debug("Avalanche bulletin fetched", map[string]interface{}{
		"run_id":    runID,
		"bulletins": len(bulletins),
	})
	return avalancheData{bulletins: bulletins, ok: true}
}

// runResort drives one resort through its stages. It always returns a view.
func (p *Pipeline) runResort(ctx context.Context, runID string, resort models.ResortConfig, now time.Time, avalanche avalancheData) models.ResortView {
	tz, loc := p.location(resort)
	r := &resortRun{
		runID: runID,
		stage: models.StagePending,
		partials: aggregate.Partials{
			Resort:   resort,
			Today:    aggregate.Today(now, loc),
			Timezone: tz,
		},
	}

	for _, s := range p.stages(resort, tz) {
		r.advance(s.name)
		r.execute(ctx, s)
	}

	r.advance(models.StageAggregating)
	if avalanche.ok {
		a := aggregate.Avalanche(avalanche.bulletins, resort.AvalancheRegions)
		r.partials.Avalanche = &a
	}
	view := aggregate.BuildView(r.partials)

	r.advance(models.StageDone)
	return view
}

func (p *Pipeline) location(resort models.ResortConfig) (string, *time.Location) {
	if resort.Timezone != "" {
		if loc, err := time.LoadLocation(resort.Timezone); err == nil {
			return resort.Timezone, loc
		}
		logger.Warn("Unknown resort timezone, using default", map[string]interface{}{
			"resort":   resort.ID,
			"timezone": resort.Timezone,
		})
	}
	return p.defaultTZ, p.defaultLoc
}
