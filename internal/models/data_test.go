package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func elevation(v int) *int { return &v }

func TestStationElevationsOrdered(t *testing.T) {
	tests := []struct {
		name     string
		stations StationElevations
		want     []Station
	}{
		{
			name:     "all positions",
			stations: StationElevations{Top: elevation(2550), Mid: elevation(2000), Bottom: elevation(1500)},
			want: []Station{
				{Position: PositionTop, Elevation: 2550},
				{Position: PositionMid, Elevation: 2000},
				{Position: PositionBottom, Elevation: 1500},
			},
		},
		{
			name:     "missing mid",
			stations: StationElevations{Top: elevation(2500), Bottom: elevation(1600)},
			want: []Station{
				{Position: PositionTop, Elevation: 2500},
				{Position: PositionBottom, Elevation: 1600},
			},
		},
		{
			name:     "none",
			stations: StationElevations{},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stations.Ordered())
		})
	}
}

func TestResortConfigYAML(t *testing.T) {
	raw := `
id: alta-badia
name: Alta Badia
latitude: 46.55
longitude: 11.89
stations:
  top: 2550
  bottom: 1500
avalanche_regions: [IT-32-BZ]
`
	var cfg ResortConfig
	require.NoError(t, yaml.Unmarshal([]byte(raw), &cfg))

	assert.Equal(t, "alta-badia", cfg.ID)
	assert.Equal(t, []string{"IT-32-BZ"}, cfg.AvalancheRegions)
	assert.Nil(t, cfg.Stations.Mid)
	assert.Len(t, cfg.Stations.Ordered(), 2)
}

func TestSnapshotJSONOmitsUnknownFacts(t *testing.T) {
	snap := Snapshot{
		ID:          "run-1",
		GeneratedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		Today:       "2026-01-10",
		Resorts: []ResortView{{
			ID:      "bare",
			Name:    "Bare",
			Today:   "2026-01-10",
			Sources: []StageResult{{Stage: StageFetchingWeather, Status: SourceUnavailable, Error: "timeout"}},
		}},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "avalanche")

	resort := decoded["resorts"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"lifts", "pistes", "km_open", "snowfall", "hours"} {
		assert.NotContains(t, resort, key)
	}
	assert.Len(t, resort["sources"], 1)
}
