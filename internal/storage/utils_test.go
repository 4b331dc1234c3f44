package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"index.html", "text/html; charset=utf-8"},
		{"snapshot.json", "application/json"},
		{"styles.css", "text/css; charset=utf-8"},
		{"snowfall_overview.png", "image/png"},
		{"PHOTO.JPG", "image/jpeg"},
		{"digest.md", "text/markdown; charset=utf-8"},
		{"archive.tar.gz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetContentType(tt.filename))
		})
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"index.html", "snapshot.json", "snowfall_overview.png", "resort-chart.html"}
	for _, n := range valid {
		assert.NoError(t, ValidateName(n), n)
	}

	invalid := []string{"", ".", "..", ".staging-1", "a/b", `a\b`, "../index.html"}
	for _, n := range invalid {
		assert.Error(t, ValidateName(n), n)
	}
}

type staticLister struct {
	names []string
	err   error
}

func (s staticLister) ListFiles(context.Context) ([]string, error) {
	return s.names, s.err
}

func TestStaleNames(t *testing.T) {
	keep := map[string][]byte{"index.html": nil, "snapshot.json": nil}

	stale, err := staleNames(context.Background(), staticLister{
		names: []string{"digest.md", "index.html", "snapshot.json", "snowfall_overview.png"},
	}, keep)
	require.NoError(t, err)
	assert.Equal(t, []string{"digest.md", "snowfall_overview.png"}, stale)

	stale, err = staleNames(context.Background(), staticLister{names: []string{"index.html"}}, keep)
	require.NoError(t, err)
	assert.Empty(t, stale)

	_, err = staleNames(context.Background(), staticLister{err: errors.New("bucket gone")}, keep)
	assert.Error(t, err)
}
