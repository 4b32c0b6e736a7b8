// Package imagefetch downloads receipt images referenced by gs:// URIs.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// Fetcher retrieves image bytes for a storage URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// GCSFetcher implements Fetcher against Google Cloud Storage.
type GCSFetcher struct {
	client *storage.Client
}

// NewGCSFetcher creates a fetcher with a shared storage client.
func NewGCSFetcher(ctx context.Context) (*GCSFetcher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewGCSFetcher: creating storage client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Close releases the underlying client connection.
func (f *GCSFetcher) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// Fetch reads the object named by a "gs://bucket/path" URI.
func (f *GCSFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}

	r, err := f.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Fetch: open %s: %w", uri, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Fetch: read %s: %w", uri, err)
	}
	return data, nil
}

func splitGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("splitGCSURI: %q is not a gs:// URI", uri)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("splitGCSURI: %q lacks bucket or object", uri)
	}
	return bucket, object, nil
}
