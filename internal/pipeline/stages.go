package pipeline

import (
	"context"

	"skisnap/internal/aggregate"
	"skisnap/internal/logger"
	"skisnap/internal/models"
)

// stage is one fetch step of the per-resort state machine. A stage with
// configured == false is recorded as skipped without running.
type stage struct {
	name       string
	configured bool
	fetch      func(ctx context.Context, r *resortRun) error
}

// resortRun is the mutable record of one resort's progress. It is owned by
// a single goroutine.
type resortRun struct {
	runID    string
	stage    string
	partials aggregate.Partials
}

func (r *resortRun) fields(extra map[string]interface{}) map[string]interface{} {
	f := map[string]interface{}{
		"run_id": r.runID,
		"resort": r.partials.Resort.ID,
		"stage":  r.stage,
	}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func (r *resortRun) advance(next string) {
	logger.Debug("Resort stage transition", r.fields(map[string]interface{}{
		"from": r.stage,
		"to":   next,
	}))
	r.stage = next
}

// execute runs the current stage and records its outcome
func (r *resortRun) execute(ctx context.Context, s stage) {
	result := models.StageResult{Stage: s.name}

	switch err := s.run(ctx, r); {
	case !s.configured:
		result.Status = models.SourceSkipped
	case err != nil:
		result.Status = models.SourceUnavailable
		result.Error = err.Error()
		logger.Warn("Source unavailable", r.fields(map[string]interface{}{
			"error": err.Error(),
		}))
	default:
		result.Status = models.SourceAvailable
	}

	r.partials.Sources = append(r.partials.Sources, result)
}

func (s stage) run(ctx context.Context, r *resortRun) error {
	if !s.configured {
		return nil
	}
	return s.fetch(ctx, r)
}

// stages lists the fetch steps in state-machine order
func (p *Pipeline) stages(resort models.ResortConfig, timezone string) []stage {
	df := p.fetcher
	return []stage{
		{
			name:       models.StageFetchingWeather,
			configured: df.Forecast != nil && len(resort.Stations.Ordered()) > 0,
			fetch: func(ctx context.Context, r *resortRun) error {
				readings, err := df.Forecast.Fetch(ctx, resort, timezone)
				if err != nil {
					return err
				}
				r.partials.Stations = readings
				return nil
			},
		},
		{
			name:       models.StageFetchingStatus,
			configured: df.Status != nil && resort.StatusURL != "",
			fetch: func(ctx context.Context, r *resortRun) error {
				st, err := df.Status.Fetch(ctx, resort.StatusURL)
				if err != nil {
					return err
				}
				r.partials.Status = st
				return nil
			},
		},
		{
			name:       models.StageFetchingLiveMap,
			configured: df.LiveMap != nil && resort.LiveMapURL != "",
			fetch: func(ctx context.Context, r *resortRun) error {
				m, err := df.LiveMap.Fetch(ctx, resort.LiveMapURL)
				if err != nil {
					return err
				}
				r.partials.LiveMap = m
				return nil
			},
		},
		{
			name:       models.StageFetchingSched,
			configured: df.Schedule != nil && resort.ScheduleURL != "",
			fetch: func(ctx context.Context, r *resortRun) error {
				sched, err := df.Schedule.Fetch(ctx, resort.ScheduleURL)
				if err != nil {
					return err
				}
				r.partials.Schedule = sched
				return nil
			},
		},
		{
			name:       models.StageFetchingNews,
			configured: df.News != nil && resort.NewsURL != "",
			fetch: func(ctx context.Context, r *resortRun) error {
				items, err := df.News.Fetch(ctx, resort.NewsURL)
				if err != nil {
					return err
				}
				r.partials.Headlines = items
				return nil
			},
		},
	}
}
