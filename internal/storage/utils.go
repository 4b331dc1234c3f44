package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
)

// CacheControl is applied to published objects; snapshots change every run
const CacheControl = "public, max-age=300"

var contentTypes = map[string]string{
	".json": "application/json",
	".txt":  "text/plain; charset=utf-8",
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidateName accepts flat snapshot file names only
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("empty file name")
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("file name %q must not contain a path separator", name)
	case name == "." || name == ".." || strings.HasPrefix(name, "."):
		return fmt.Errorf("file name %q must not start with a dot", name)
	}
	return nil
}

// sortedNames validates and orders the keys of a publish set
func sortedNames(files map[string][]byte) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("nothing to publish")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type fileLister interface {
	ListFiles(ctx context.Context) ([]string, error)
}

// staleNames lists published files that are not part of keep
func staleNames(ctx context.Context, l fileLister, keep map[string][]byte) ([]string, error) {
	published, err := l.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published files: %w", err)
	}
	var stale []string
	for _, name := range published {
		if _, ok := keep[name]; !ok {
			stale = append(stale, name)
		}
	}
	return stale, nil
}
