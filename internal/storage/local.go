package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LocalArchive writes run summaries as JSON files under a directory.
type LocalArchive struct {
	dir string
}

func NewLocalArchive(dir string) *LocalArchive {
	return &LocalArchive{dir: dir}
}

func (a *LocalArchive) SaveSummary(_ context.Context, summary *RunSummary) (string, error) {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("create archive directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run summary: %w", err)
	}

	path := filepath.Join(a.dir, summaryName(summary))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write run summary: %w", err)
	}

	return path, nil
}
