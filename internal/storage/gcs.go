package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
)

const summaryPrefix = "run-summaries"

// GCSArchive writes run summaries to a Cloud Storage bucket, keeping the
// history visible to the rest of the team instead of trapped on one machine.
type GCSArchive struct {
	client *storage.Client
	bucket string
}

func NewGCSArchive(ctx context.Context, bucket string) (*GCSArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	return &GCSArchive{client: client, bucket: bucket}, nil
}

func (a *GCSArchive) Close() error {
	return a.client.Close()
}

func (a *GCSArchive) SaveSummary(ctx context.Context, summary *RunSummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run summary: %w", err)
	}

	object := path.Join(summaryPrefix, summaryName(summary))
	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write run summary: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("commit run summary: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, object), nil
}
