package fetchers

import (
	"context"
	"fmt"

	"skisnap/internal/extract"
	"skisnap/internal/models"
)

// StatusPageFetcher reads the resort status page
type StatusPageFetcher struct {
	fetcher TextFetcher
}

// NewStatusPageFetcher creates a status page fetcher
func NewStatusPageFetcher(fetcher TextFetcher) *StatusPageFetcher {
	return &StatusPageFetcher{fetcher: fetcher}
}

// Fetch downloads the page and extracts whatever facts it carries
func (f *StatusPageFetcher) Fetch(ctx context.Context, url string) (*models.ResortStatus, error) {
	body, err := f.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("status page: %w", err)
	}
	status := extract.ParseStatusPage(body)
	return &status, nil
}

// ScheduleFetcher reads the lift schedule page
type ScheduleFetcher struct {
	fetcher TextFetcher
}

// NewScheduleFetcher creates a schedule fetcher
func NewScheduleFetcher(fetcher TextFetcher) *ScheduleFetcher {
	return &ScheduleFetcher{fetcher: fetcher}
}

// Fetch downloads the schedule page and parses its lift blocks
func (f *ScheduleFetcher) Fetch(ctx context.Context, url string) (*models.LiftSchedule, error) {
	body, err := f.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("schedule page: %w", err)
	}
	schedule := extract.ParseSchedule(body)
	return &schedule, nil
}
