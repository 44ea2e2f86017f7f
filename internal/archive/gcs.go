package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/charmbracelet/log"
	"google.golang.org/api/googleapi"
)

// GCS archives artifacts to a Cloud Storage bucket. The client is created on
// first use and shared until Close or Reset.
type GCS struct {
	bucket string
	prefix string
	logger *log.Logger

	mu        sync.Mutex
	client    *storage.Client
	newClient func(ctx context.Context) (*storage.Client, error)
}

// NewGCS returns an archive writing to bucket under prefix. No connection is
// made until the first Save.
func NewGCS(bucket, prefix string, logger *log.Logger) *GCS {
	if logger == nil {
		logger = log.Default()
	}
	return &GCS{
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		newClient: func(ctx context.Context) (*storage.Client, error) {
			return storage.NewClient(ctx)
		},
	}
}

// handle returns the bucket handle, creating the client if needed.
func (g *GCS) handle(ctx context.Context) (*storage.BucketHandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		client, err := g.newClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		g.client = client
	}
	return g.client.Bucket(g.bucket), nil
}

// Save writes data to <prefix>/<key>.pdf only if the object does not exist yet.
func (g *GCS) Save(ctx context.Context, key string, data []byte) error {
	bucket, err := g.handle(ctx)
	if err != nil {
		return err
	}

	name := ObjectName(g.prefix, key)
	writer := bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = "application/pdf"

	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		if alreadyExists(err) {
			g.logger.Debug("artifact already archived", "object", name)
			return nil
		}
		return fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		if alreadyExists(err) {
			g.logger.Debug("artifact already archived", "object", name)
			return nil
		}
		return fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	return nil
}

// Reset closes the client, if any, so the next Save creates a new one.
func (g *GCS) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

// Close releases the client.
func (g *GCS) Close() error {
	return g.Reset()
}

// alreadyExists reports whether err is a failed DoesNotExist precondition.
func alreadyExists(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}

var _ Archiver = (*GCS)(nil)
