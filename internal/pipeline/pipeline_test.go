package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skisnap/internal/config"
	"skisnap/internal/fetchers"
	"skisnap/internal/mocks"
	"skisnap/internal/models"
)

const (
	forecastURL  = "https://forecast.test/v1"
	avalancheURL = "https://avalanche.test/latest.json"
)

// prefixFetcher serves bodies by URL prefix; everything else is a 503
type prefixFetcher map[string]string

func (f prefixFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for prefix, body := range f {
		if strings.HasPrefix(url, prefix) {
			return body, nil
		}
	}
	return "", fmt.Errorf("%w: GET %s returned status 503", fetchers.ErrUnavailable, url)
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
}

func newPipeline(t *testing.T, tf fetchers.TextFetcher) *Pipeline {
	t.Helper()
	p, err := New(fetchers.NewDataFetcher(tf, forecastURL, avalancheURL), Options{
		Workers:         4,
		DefaultTimezone: "Europe/Rome",
		Now:             fixedNow,
	})
	require.NoError(t, err)
	return p
}

func top(m int) *int { return &m }

func testResort() models.ResortConfig {
	return models.ResortConfig{
		ID:         "plan",
		Name:       "Plan de Corones",
		Latitude:   46.74,
		Longitude:  11.95,
		Stations:   models.StationElevations{Top: top(2275)},
		StatusURL:  "https://resort.test/status",
		LiveMapURL: "https://resort.test/map.json",
	}
}

func stageStatus(v models.ResortView) map[string]string {
	out := make(map[string]string, len(v.Sources))
	for _, s := range v.Sources {
		out[s.Stage] = s.Status
	}
	return out
}

func TestRunForecastFailsStatusSucceeds(t *testing.T) {
	p := newPipeline(t, prefixFetcher{
		"https://resort.test/status": "<p>Lifts Open 20/32</p><p>Runs Open 30/56</p><p>Base 80 cm Hard Pack</p>",
	})

	snap, err := p.Run(context.Background(), []models.ResortConfig{testResort()})
	require.NoError(t, err)
	require.Len(t, snap.Resorts, 1)

	v := snap.Resorts[0]
	assert.Empty(t, v.Stations)
	assert.Nil(t, v.Snowfall)

	require.NotNil(t, v.Lifts)
	assert.Equal(t, models.Occupancy{Open: 20, Total: 32}, *v.Lifts)
	require.NotNil(t, v.Pistes)
	assert.Equal(t, models.Occupancy{Open: 30, Total: 56}, *v.Pistes)
	require.NotNil(t, v.BaseDepthCm)
	assert.Equal(t, 80, *v.BaseDepthCm)
	assert.Equal(t, "Hard Pack", v.BaseCondition)

	status := stageStatus(v)
	assert.Equal(t, models.SourceUnavailable, status[models.StageFetchingWeather])
	assert.Equal(t, models.SourceAvailable, status[models.StageFetchingStatus])
	assert.Equal(t, models.SourceUnavailable, status[models.StageFetchingLiveMap])
	assert.Equal(t, models.SourceSkipped, status[models.StageFetchingSched])
	assert.Equal(t, models.SourceSkipped, status[models.StageFetchingNews])

	// the bulletin feed is down too
	assert.Nil(t, snap.Avalanche)
	assert.Nil(t, v.Avalanche)
}

func TestRunAllSourcesUnreachable(t *testing.T) {
	p := newPipeline(t, prefixFetcher{})

	resorts := []models.ResortConfig{testResort(), {ID: "bare", Name: "Bare"}}
	snap, err := p.Run(context.Background(), resorts)
	require.NoError(t, err)
	require.Len(t, snap.Resorts, 2)

	for _, v := range snap.Resorts {
		assert.Empty(t, v.Stations)
		assert.Nil(t, v.Snowfall)
		assert.Nil(t, v.Lifts)
		assert.Nil(t, v.Pistes)
		assert.Nil(t, v.KmOpen)
		assert.Nil(t, v.Hours)
		assert.Nil(t, v.Avalanche)
		assert.Len(t, v.Sources, 5)
	}
	assert.Equal(t, "plan", snap.Resorts[0].ID)
	assert.Equal(t, "bare", snap.Resorts[1].ID)
	for _, s := range snap.Resorts[1].Sources {
		assert.Equal(t, models.SourceSkipped, s.Status)
	}
}

func TestRunAvalancheEmptyBulletinIsLow(t *testing.T) {
	p := newPipeline(t, prefixFetcher{avalancheURL: `{"bulletins": []}`})

	snap, err := p.Run(context.Background(), []models.ResortConfig{testResort()})
	require.NoError(t, err)
	require.NotNil(t, snap.Avalanche)
	assert.Equal(t, 1, snap.Avalanche.Level)
	require.NotNil(t, snap.Resorts[0].Avalanche)
	assert.Equal(t, "Low", snap.Resorts[0].Avalanche.Label)
}

func TestRunCancelled(t *testing.T) {
	p := newPipeline(t, prefixFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := p.Run(ctx, []models.ResortConfig{testResort()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, snap)
}

func TestRunTodayUsesResortTimezone(t *testing.T) {
	p, err := New(fetchers.NewDataFetcher(prefixFetcher{}, forecastURL, ""), Options{
		DefaultTimezone: "UTC",
		Now:             func() time.Time { return time.Date(2026, 1, 9, 23, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	rome := testResort()
	rome.Timezone = "Europe/Rome"
	snap, err := p.Run(context.Background(), []models.ResortConfig{rome, {ID: "utc", Name: "UTC"}})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-09", snap.Today)
	assert.Equal(t, "2026-01-10", snap.Resorts[0].Today)
	assert.Equal(t, "Europe/Rome", snap.Resorts[0].Timezone)
	assert.Equal(t, "2026-01-09", snap.Resorts[1].Today)
	assert.Equal(t, "UTC", snap.Resorts[1].Timezone)
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	_, err := New(fetchers.NewDataFetcher(prefixFetcher{}, "", ""), Options{DefaultTimezone: "Atlantis/Capital"})
	assert.Error(t, err)
}

func fixtureRun(t *testing.T) *models.Snapshot {
	t.Helper()
	svc, err := mocks.NewMockService("../mocks/data")
	require.NoError(t, err)
	resorts, err := config.LoadResorts("../../resorts.yaml")
	require.NoError(t, err)

	p, err := New(fetchers.NewDataFetcher(svc,
		"https://api.open-meteo.com/v1/forecast",
		"https://static.avalanche.report/bulletins/latest/EUREGIO_en_CAAMLv6.json",
	), Options{Workers: 2, DefaultTimezone: "Europe/Rome", Now: fixedNow})
	require.NoError(t, err)

	snap, err := p.Run(context.Background(), resorts)
	require.NoError(t, err)
	return snap
}

func TestRunIsIdempotentWithIdenticalFixtures(t *testing.T) {
	first := fixtureRun(t)
	second := fixtureRun(t)

	assert.NotEqual(t, first.ID, second.ID)
	first.ID, second.ID = "", ""
	assert.Equal(t, first, second)
}

func TestRunWithBundledFixtures(t *testing.T) {
	snap := fixtureRun(t)

	assert.Equal(t, "2026-01-10", snap.Today)
	require.NotNil(t, snap.Avalanche)
	assert.Equal(t, 4, snap.Avalanche.Level)
	require.Len(t, snap.Resorts, 2)

	badia := snap.Resorts[0]
	assert.Equal(t, "alta-badia", badia.ID)
	require.Len(t, badia.Stations, 3)
	require.NotNil(t, badia.Snowfall)
	assert.Equal(t, models.PositionTop, badia.Snowfall.Station)
	assert.InDelta(t, 16.1, badia.Snowfall.Past3, 1e-9)
	assert.InDelta(t, 7.7, badia.Snowfall.Next3, 1e-9)
	assert.InDelta(t, 19.6, badia.Snowfall.Next7, 1e-9)
	require.NotNil(t, badia.Lifts)
	assert.Equal(t, models.Occupancy{Open: 43, Total: 53}, *badia.Lifts)
	assert.Equal(t, "Powder", badia.SummitCondition)
	require.NotNil(t, badia.Hours)
	assert.Equal(t, models.OperatingHours{Open: "8:30", Close: "16:45"}, *badia.Hours)
	require.NotNil(t, badia.Avalanche)
	assert.Equal(t, 3, badia.Avalanche.Level)
	require.Len(t, badia.Headlines, 3)
	assert.Equal(t, "Fresh snow: 30 cm on the Sellaronda", badia.Headlines[0].Title)

	rules := map[string]string{}
	for _, l := range badia.LiftList {
		rules[l.Name] = l.MatchRule
	}
	assert.Equal(t, map[string]string{
		"Piz Sorega":       "exact",
		"Col Alto Express": "contains",
		"Vallon Boè":       "tokens",
		"Lagazuoi":         "exact",
		"Pralongià Nord":   "",
	}, rules)

	gardena := snap.Resorts[1]
	assert.Equal(t, "val-gardena", gardena.ID)
	require.Len(t, gardena.Stations, 1)
	assert.Equal(t, models.PositionTop, gardena.Stations[0].Position)
	require.NotNil(t, gardena.Lifts)
	assert.Equal(t, models.Occupancy{Open: 2, Total: 4}, *gardena.Lifts)
	assert.Nil(t, gardena.KmOpen)

	status := stageStatus(gardena)
	assert.Equal(t, models.SourceAvailable, status[models.StageFetchingWeather])
	assert.Equal(t, models.SourceUnavailable, status[models.StageFetchingStatus])
	assert.Equal(t, models.SourceSkipped, status[models.StageFetchingNews])
}

func TestRunNewsForSeveralResorts(t *testing.T) {
	feed := `<?xml version="1.0"?><rss version="2.0"><channel><title>News</title>` +
		`<item><title>Fresh snow</title><pubDate>Fri, 09 Jan 2026 07:00:00 +0000</pubDate></item>` +
		`</channel></rss>`
	p := newPipeline(t, prefixFetcher{"https://news.test/": feed})

	var resorts []models.ResortConfig
	for i := 0; i < 6; i++ {
		r := testResort()
		r.ID = fmt.Sprintf("resort-%d", i)
		r.NewsURL = fmt.Sprintf("https://news.test/%d.xml", i)
		resorts = append(resorts, r)
	}

	snap, err := p.Run(context.Background(), resorts)
	require.NoError(t, err)
	require.Len(t, snap.Resorts, len(resorts))

	for i, v := range snap.Resorts {
		assert.Equal(t, resorts[i].ID, v.ID)
		require.Len(t, v.Headlines, 1, v.ID)
		assert.Equal(t, "Fresh snow", v.Headlines[0].Title)
		assert.Equal(t, models.SourceAvailable, stageStatus(v)[models.StageFetchingNews])
	}
}
