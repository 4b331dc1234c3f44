package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"skisnap/internal/logger"
)

// stagingPattern names the per-publish scratch directory inside baseDir.
// It lives on the same filesystem so the final rename cannot cross devices.
const stagingPattern = ".staging-*"

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if baseDir == "" {
		baseDir = "reports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the directory snapshots are published to
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// Publish writes every file into a staging directory first and renames them
// into place only after all writes succeeded, then removes published files
// the new set does not contain. A failed or cancelled publish leaves the
// previous snapshot untouched.
func (l *LocalStorageClient) Publish(ctx context.Context, files map[string][]byte) error {
	names, err := sortedNames(files)
	if err != nil {
		return err
	}

	staging, err := os.MkdirTemp(l.baseDir, stagingPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publish aborted: %w", err)
		}
		if err := os.WriteFile(filepath.Join(staging, name), files[name], 0o644); err != nil {
			return fmt.Errorf("failed to stage %s: %w", name, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish aborted: %w", err)
	}
	for _, name := range names {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(l.baseDir, name)); err != nil {
			return fmt.Errorf("failed to move %s into place: %w", name, err)
		}
	}

	removed, err := l.removeStale(ctx, files)
	if err != nil {
		return err
	}

	logger.Info("Snapshot published", map[string]interface{}{
		"storage": "local",
		"dir":     l.baseDir,
		"files":   len(names),
		"removed": removed,
	})
	return nil
}

// removeStale deletes published files that are not part of keep
func (l *LocalStorageClient) removeStale(ctx context.Context, keep map[string][]byte) (int, error) {
	stale, err := staleNames(ctx, l, keep)
	if err != nil {
		return 0, err
	}
	for _, name := range stale {
		if err := os.Remove(filepath.Join(l.baseDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("failed to remove stale file %s: %w", name, err)
		}
	}
	return len(stale), nil
}

// GetFile retrieves a published file
func (l *LocalStorageClient) GetFile(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	data, err := os.ReadFile(filepath.Join(l.baseDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return data, nil
}

// ListFiles lists published files, skipping staging directories
func (l *LocalStorageClient) ListFiles(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.baseDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || ValidateName(e.Name()) != nil {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// FileExists checks if a published file exists
func (l *LocalStorageClient) FileExists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, nil
	}
	info, err := os.Stat(filepath.Join(l.baseDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return !info.IsDir(), nil
}
