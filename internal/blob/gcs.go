package blob

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// GCS is a Store backed by a public Cloud Storage bucket.
type GCS struct {
	storage *storage.Client
	bucket  string
}

// NewGCS returns a Store writing to the given bucket.
func NewGCS(storage *storage.Client, bucket string) *GCS {
	return &GCS{
		storage: storage,
		bucket:  bucket,
	}
}

func (g *GCS) Write(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	w := g.storage.Bucket(g.bucket).Object(path).NewWriter(ctx)
	defer func() {
		_ = w.Close()
	}()
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("blob: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("blob: closing writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, path), nil
}

func (g *GCS) Delete(ctx context.Context, url string) error {
	path, ok := strings.CutPrefix(url, fmt.Sprintf("https://storage.googleapis.com/%s/", g.bucket))
	if !ok {
		return fmt.Errorf("blob: url %q is not in bucket %s", url, g.bucket)
	}
	if err := g.storage.Bucket(g.bucket).Object(path).Delete(ctx); err != nil {
		return fmt.Errorf("blob: deleting object %s: %w", path, err)
	}
	return nil
}
