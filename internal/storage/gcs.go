package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"skisnap/internal/logger"
)

// gcsStagingRoot holds in-flight uploads; objects under it are never served
const gcsStagingRoot = ".staging/"

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// Publish uploads every file under a private staging prefix, copies them
// over the served names and deletes served objects the new set lacks. The staging objects are removed afterwards
// whether or not the publish succeeded.
func (g *GCSClient) Publish(ctx context.Context, files map[string][]byte) error {
	names, err := sortedNames(files)
	if err != nil {
		return err
	}

	bucket := g.client.Bucket(g.bucket)
	staging := gcsStagingRoot + uuid.NewString() + "/"
	publishedAt := time.Now().UTC().Format(time.RFC3339)
	defer g.cleanup(staging)

	for _, name := range names {
		w := bucket.Object(staging + name).NewWriter(ctx)
		w.ContentType = GetContentType(name)
		if _, err := w.Write(files[name]); err != nil {
			w.Close()
			return fmt.Errorf("failed to stage %s to GCS: %w", name, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to finalize staged upload of %s: %w", name, err)
		}
	}

	for _, name := range names {
		copier := bucket.Object(name).CopierFrom(bucket.Object(staging + name))
		copier.ContentType = GetContentType(name)
		copier.CacheControl = CacheControl
		copier.Metadata = map[string]string{
			"published-at": publishedAt,
		}
		if _, err := copier.Run(ctx); err != nil {
			return fmt.Errorf("failed to publish %s: %w", name, err)
		}
	}

	stale, err := staleNames(ctx, g, files)
	if err != nil {
		return err
	}
	for _, name := range stale {
		if err := bucket.Object(name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("failed to remove stale object %s: %w", name, err)
		}
	}

	logger.Info("Snapshot published", map[string]interface{}{
		"storage": "gcs",
		"bucket":  g.bucket,
		"files":   len(names),
		"removed": len(stale),
	})
	return nil
}

// cleanup deletes a staging prefix with its own deadline so a cancelled
// publish still removes what it uploaded
func (g *GCSClient) cleanup(prefix string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bucket := g.client.Bucket(g.bucket)
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return
		}
		if err != nil {
			logger.Warn("Failed to list staging objects", map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			})
			return
		}
		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			logger.Warn("Failed to delete staging object", map[string]interface{}{
				"object": attrs.Name,
				"error":  err.Error(),
			})
		}
	}
}

// GetFile retrieves a published file from GCS
func (g *GCSClient) GetFile(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	reader, err := g.client.Bucket(g.bucket).Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", name, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}
	return fileData, nil
}

// ListFiles lists published objects at the bucket root
func (g *GCSClient) ListFiles(ctx context.Context) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Delimiter: "/"})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		// prefixes show up as synthetic entries with an empty Name
		if attrs.Name == "" || strings.HasPrefix(attrs.Name, ".") {
			continue
		}
		names = append(names, attrs.Name)
	}
	sort.Strings(names)
	return names, nil
}

// FileExists checks if a published object exists
func (g *GCSClient) FileExists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, nil
	}
	_, err := g.client.Bucket(g.bucket).Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", name, err)
	}
	return true, nil
}
