package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skisnap/internal/app"
	"skisnap/internal/config"
	"skisnap/internal/server"
)

func TestServiceGeneratesAndServesSnapshot(t *testing.T) {
	cfg := &config.Config{
		Port:            "8981",
		ResortsFile:     "resorts.yaml",
		ForecastURL:     "https://api.open-meteo.com/v1/forecast",
		AvalancheURL:    "https://static.avalanche.report/bulletins/latest/EUREGIO_en_CAAMLv6.json",
		FetchTimeout:    time.Second,
		Workers:         2,
		DefaultTimezone: "Europe/Rome",
		StorageMode:     config.StorageLocal,
		LocalReportsDir: t.TempDir(),
		MockupMode:      true,
		MocksDir:        "internal/mocks/data",
	}

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	httpServer := newHTTPServer(cfg, server.NewServer(a.Storage, a.Generator))
	assert.Equal(t, ":8981", httpServer.Addr)

	ts := httptest.NewServer(httpServer.Handler)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/generate", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/", "/snapshot.json", "/styles.css", "/health"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
