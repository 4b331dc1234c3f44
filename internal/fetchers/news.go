package fetchers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"skisnap/internal/models"
)

// MaxHeadlines is how many news items a resort view carries
const MaxHeadlines = 3

// NewsFetcher reads a resort's RSS or Atom news feed. It is safe for
// concurrent use.
type NewsFetcher struct {
	fetcher TextFetcher
}

// NewNewsFetcher creates a news fetcher
func NewNewsFetcher(fetcher TextFetcher) *NewsFetcher {
	return &NewsFetcher{fetcher: fetcher}
}

// Fetch returns the newest headlines of the feed
func (f *NewsFetcher) Fetch(ctx context.Context, url string) ([]models.Headline, error) {
	body, err := f.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("news feed: %w", err)
	}

	// gofeed.Parser sets its translators on first use, so each call gets its own
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse news feed: %w", ErrUnavailable, err)
	}
	return headlines(feed.Items), nil
}

// headlines keeps dated items newest first, undated items after them in
// feed order
func headlines(items []*gofeed.Item) []models.Headline {
	var out []models.Headline
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		h := models.Headline{Title: title, Link: it.Link}
		switch {
		case it.PublishedParsed != nil:
			t := it.PublishedParsed.UTC()
			h.Published = &t
		case it.UpdatedParsed != nil:
			t := it.UpdatedParsed.UTC()
			h.Published = &t
		}
		out = append(out, h)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Published, out[j].Published
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})

	if len(out) > MaxHeadlines {
		out = out[:MaxHeadlines]
	}
	return out
}
