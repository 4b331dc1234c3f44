package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"skisnap/internal/extract"
	"skisnap/internal/models"
)

type liveMapItem struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// liveMapPayload accepts both "slopes" and "pistes" for the run list
type liveMapPayload struct {
	Lifts  []liveMapItem `json:"lifts"`
	Slopes []liveMapItem `json:"slopes"`
	Pistes []liveMapItem `json:"pistes"`
}

// LiveMapFetcher reads the live-map overlay JSON
type LiveMapFetcher struct {
	fetcher TextFetcher
}

// NewLiveMapFetcher creates a live-map fetcher
func NewLiveMapFetcher(fetcher TextFetcher) *LiveMapFetcher {
	return &LiveMapFetcher{fetcher: fetcher}
}

// Fetch downloads and decodes the overlay
func (f *LiveMapFetcher) Fetch(ctx context.Context, url string) (*models.LiveMap, error) {
	body, err := f.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("live map: %w", err)
	}
	return ParseLiveMap(body)
}

// ParseLiveMap decodes an overlay payload. Entries without a name are dropped.
func ParseLiveMap(body string) (*models.LiveMap, error) {
	var p liveMapPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("%w: decode live map: %w", ErrUnavailable, err)
	}

	m := &models.LiveMap{}
	for _, it := range p.Lifts {
		if name := extract.CollapseSpace(it.Name); name != "" {
			m.Lifts = append(m.Lifts, models.LiftStatusEntry{Name: name, Status: NormalizeStatus(it.Status)})
		}
	}
	for _, it := range append(p.Slopes, p.Pistes...) {
		if name := extract.CollapseSpace(it.Name); name != "" {
			m.Pistes = append(m.Pistes, models.PisteStatusEntry{Name: name, Status: NormalizeStatus(it.Status)})
		}
	}
	return m, nil
}

// NormalizeStatus maps the overlay's status codes onto open, closed or
// evaluating. Anything unrecognised is treated as closed.
func NormalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "o", "opened":
		return models.StatusOpen
	case "evaluating", "e", "in_evaluation", "pending":
		return models.StatusEvaluating
	default:
		return models.StatusClosed
	}
}
