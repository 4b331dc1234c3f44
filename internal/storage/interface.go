package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a published file does not exist
var ErrNotFound = errors.New("file not found")

// StorageClient defines the operations the snapshot writer and server need
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// Publish replaces the current snapshot files with files. Nothing visible
	// changes until every file has been staged successfully.
	Publish(ctx context.Context, files map[string][]byte) error

	// GetFile retrieves a published file by name
	GetFile(ctx context.Context, name string) ([]byte, error)

	// ListFiles lists the names of published files, sorted
	ListFiles(ctx context.Context) ([]string, error)

	// FileExists checks if a published file exists
	FileExists(ctx context.Context, name string) (bool, error)
}
