package server

import (
	"context"
	"time"

	"skisnap/internal/logger"
)

// RunScheduler generates a snapshot right away and then every interval
// until ctx is done. A tick that finds a generation in progress is skipped.
func (s *Server) RunScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	logger.Info("Snapshot scheduler started", map[string]interface{}{
		"interval": interval.String(),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.scheduledRun(ctx)

		select {
		case <-ctx.Done():
			logger.Info("Snapshot scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) scheduledRun(ctx context.Context) {
	result, ran, err := s.Generate(ctx)
	switch {
	case !ran:
		logger.Debug("Scheduled snapshot skipped, generation in progress")
	case err != nil:
		logger.Error("Scheduled snapshot failed", err)
	default:
		logger.Info("Scheduled snapshot published", map[string]interface{}{
			"snapshot_id": result.SnapshotID,
		})
	}
}
