package reports

import (
	"context"
	"fmt"

	"skisnap/internal/logger"
	"skisnap/internal/storage"
)

// StorageOrchestrator hands generated files to storage as one publication
type StorageOrchestrator struct {
	storage storage.StorageClient
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(storageClient storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{storage: storageClient}
}

// StoreAllFiles publishes every generated file. The previous snapshot stays
// in place unless all files were staged.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) error {
	if so.storage == nil {
		return fmt.Errorf("no storage configured")
	}

	all := files.Files()
	if err := so.storage.Publish(ctx, all); err != nil {
		return fmt.Errorf("failed to publish snapshot files: %w", err)
	}

	logger.Info("Snapshot files published", map[string]interface{}{
		"files": len(all),
	})
	return nil
}
