package mocks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skisnap/internal/fetchers"
)

func TestMockServiceBundledFixtures(t *testing.T) {
	svc, err := NewMockService("data")
	require.NoError(t, err)

	body, err := svc.FetchText(context.Background(),
		"https://api.open-meteo.com/v1/forecast?current=temperature_2m&elevation=2550&latitude=46.5586&timezone=Europe%2FRome")
	require.NoError(t, err)
	assert.Contains(t, body, `"elevation": 2550`)

	body, err = svc.FetchText(context.Background(), "https://www.altabadia.org/en/ski-area/status")
	require.NoError(t, err)
	assert.Contains(t, body, "Lifts Open")

	_, err = svc.FetchText(context.Background(), "https://www.valgardena.it/en/ski-area/status")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fetchers.ErrUnavailable))

	digest, err := svc.LoadMockDigest()
	require.NoError(t, err)
	assert.Contains(t, digest, "Conditions digest")

	generated, err := svc.GenerateDigest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, digest, generated)
}

func writeIndex(t *testing.T, index string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte(index), 0o644))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestFetchTextMostSpecificFixtureWins(t *testing.T) {
	dir := writeIndex(t, `
fixtures:
  - url: https://forecast.test/v1
    file: any.json
  - url: https://forecast.test/v1
    query: {elevation: "2000"}
    file: mid.json
`, map[string]string{"any.json": "any", "mid.json": "mid"})

	svc, err := NewMockService(dir)
	require.NoError(t, err)

	body, err := svc.FetchText(context.Background(), "https://forecast.test/v1?elevation=2000&latitude=1")
	require.NoError(t, err)
	assert.Equal(t, "mid", body)

	body, err = svc.FetchText(context.Background(), "https://forecast.test/v1/?elevation=3000")
	require.NoError(t, err)
	assert.Equal(t, "any", body)
}

func TestFetchTextUnknownURL(t *testing.T) {
	dir := writeIndex(t, "fixtures: []\n", nil)
	svc, err := NewMockService(dir)
	require.NoError(t, err)

	_, err = svc.FetchText(context.Background(), "https://nowhere.test/")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fetchers.ErrUnavailable))

	digest, err := svc.LoadMockDigest()
	require.NoError(t, err)
	assert.Empty(t, digest)

	_, err = svc.GenerateDigest(context.Background(), nil)
	assert.Error(t, err)
}

func TestFetchTextCancelledContext(t *testing.T) {
	svc, err := NewMockService("data")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.FetchText(ctx, "https://www.altabadia.org/en/ski-area/status")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMockServiceRejectsBadIndex(t *testing.T) {
	tests := []struct {
		name  string
		index string
	}{
		{name: "missing url", index: "fixtures:\n  - file: a.json\n"},
		{name: "no file or status", index: "fixtures:\n  - url: https://a.test/\n"},
		{name: "unknown key", index: "fixtures: []\nextra: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMockService(writeIndex(t, tt.index, nil))
			assert.Error(t, err)
		})
	}

	_, err := NewMockService(t.TempDir())
	assert.Error(t, err)
}
