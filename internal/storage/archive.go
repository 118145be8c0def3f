package storage

import (
	"context"
	"fmt"
	"time"
)

// Archive persists run summaries so a run's outcome survives the process.
type Archive interface {
	SaveSummary(ctx context.Context, summary *RunSummary) (string, error)
}

// RunSummary is the archived record of one pipeline run.
type RunSummary struct {
	Row       int       `json:"row"`
	Status    string    `json:"status"`
	Product   string    `json:"product_name,omitempty"`
	VideoID   string    `json:"video_id,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	Message   string    `json:"message"`
	Posts     int       `json:"posts"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

func summaryName(summary *RunSummary) string {
	return fmt.Sprintf("run_%d_%s.json", summary.Row, summary.StartedAt.UTC().Format("20060102_150405"))
}
