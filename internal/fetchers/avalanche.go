package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skisnap/internal/models"
)

// caamlDocument is the subset of a CAAMLv6 JSON bulletin collection we read
type caamlDocument struct {
	Bulletins []struct {
		ValidTime struct {
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"validTime"`
		DangerRatings []struct {
			MainValue string `json:"mainValue"`
		} `json:"dangerRatings"`
		Regions []struct {
			RegionID string `json:"regionID"`
			Name     string `json:"name"`
		} `json:"regions"`
		Source struct {
			Provider struct {
				Name string `json:"name"`
			} `json:"provider"`
		} `json:"source"`
	} `json:"bulletins"`
}

// AvalancheFetcher reads the regional avalanche bulletin once per run
type AvalancheFetcher struct {
	fetcher TextFetcher
	url     string
}

// NewAvalancheFetcher creates a bulletin fetcher for the given feed
func NewAvalancheFetcher(fetcher TextFetcher, url string) *AvalancheFetcher {
	return &AvalancheFetcher{
		fetcher: fetcher,
		url:     url,
	}
}

// URL returns the bulletin feed address
func (f *AvalancheFetcher) URL() string {
	return f.url
}

// Fetch downloads and decodes the bulletin collection
func (f *AvalancheFetcher) Fetch(ctx context.Context) ([]models.AvalancheBulletin, error) {
	body, err := f.fetcher.FetchText(ctx, f.url)
	if err != nil {
		return nil, fmt.Errorf("avalanche bulletin: %w", err)
	}
	return ParseAvalanche(body)
}

// ParseAvalanche decodes a CAAMLv6 bulletin collection. Unparsable
// validity times are left zero.
func ParseAvalanche(body string) ([]models.AvalancheBulletin, error) {
	var doc caamlDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: decode avalanche bulletin: %w", ErrUnavailable, err)
	}

	out := make([]models.AvalancheBulletin, 0, len(doc.Bulletins))
	for _, b := range doc.Bulletins {
		bulletin := models.AvalancheBulletin{
			ValidFrom:  parseBulletinTime(b.ValidTime.StartTime),
			ValidUntil: parseBulletinTime(b.ValidTime.EndTime),
			Source:     b.Source.Provider.Name,
		}
		for _, r := range b.Regions {
			bulletin.Regions = append(bulletin.Regions, r.RegionID)
		}
		for _, d := range b.DangerRatings {
			bulletin.Ratings = append(bulletin.Ratings, d.MainValue)
		}
		out = append(out, bulletin)
	}
	return out, nil
}

func parseBulletinTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
