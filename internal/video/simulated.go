package video

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
)

// Simulated fabricates a completed video without touching any backend,
// keeping the publishing cadence alive when no render service is configured.
type Simulated struct {
	now func() time.Time
}

func NewSimulated() *Simulated {
	return &Simulated{now: time.Now}
}

func (s *Simulated) Produce(_ context.Context, _ *script.Document, record *sheet.Record) (*Result, error) {
	id := fmt.Sprintf("sim_video_%d", s.now().Unix())

	slog.Info("Simulated video produced", "video_id", id, "product", record.ProductName)
	return &Result{
		VideoID:  id,
		VideoURL: fmt.Sprintf("https://example.com/videos/%s.mp4", id),
		Status:   StatusCompleted,
	}, nil
}
