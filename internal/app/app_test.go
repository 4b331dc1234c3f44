package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skisnap/internal/config"
	"skisnap/internal/reports"
)

func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ResortsFile:     "../../resorts.yaml",
		ForecastURL:     "https://api.open-meteo.com/v1/forecast",
		AvalancheURL:    "https://static.avalanche.report/bulletins/latest/EUREGIO_en_CAAMLv6.json",
		FetchTimeout:    time.Second,
		Workers:         2,
		DefaultTimezone: "Europe/Rome",
		StorageMode:     config.StorageLocal,
		LocalReportsDir: t.TempDir(),
		MockupMode:      true,
		MocksDir:        "../mocks/data",
	}
}

func TestNewInMockupModePublishes(t *testing.T) {
	cfg := mockConfig(t)
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.Resorts, 2)

	result, err := a.Generator.GenerateCompleteReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Resorts)

	for _, name := range []string{reports.IndexFile, reports.SnapshotFile, reports.StylesFile, reports.DigestFile} {
		_, err := os.Stat(filepath.Join(cfg.LocalReportsDir, name))
		assert.NoError(t, err, name)
	}

	digest, err := os.ReadFile(filepath.Join(cfg.LocalReportsDir, reports.DigestFile))
	require.NoError(t, err)
	assert.Contains(t, string(digest), "Conditions digest")
}

func TestNewFailsBeforeFetching(t *testing.T) {
	t.Run("missing resorts file", func(t *testing.T) {
		cfg := mockConfig(t)
		cfg.ResortsFile = filepath.Join(t.TempDir(), "none.yaml")
		_, err := New(context.Background(), cfg)
		assert.Error(t, err)
	})

	t.Run("missing mocks", func(t *testing.T) {
		cfg := mockConfig(t)
		cfg.MocksDir = t.TempDir()
		_, err := New(context.Background(), cfg)
		assert.Error(t, err)
	})

	t.Run("unknown storage mode", func(t *testing.T) {
		cfg := mockConfig(t)
		cfg.StorageMode = "ftp"
		_, err := New(context.Background(), cfg)
		assert.Error(t, err)
	})
}
