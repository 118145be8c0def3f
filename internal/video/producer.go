package video

import (
	"context"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
)

type Status string

const (
	StatusCompleted  Status = "completed"
	StatusProcessing Status = "processing"
	StatusFailed     Status = "failed"
)

// Result describes a render job outcome. VideoURL is set only when the
// status is completed; a processing status means the job may still finish
// and the same row can be retried later.
type Result struct {
	VideoID  string
	VideoURL string
	Status   Status
}

// Producer renders a script into a video.
type Producer interface {
	Produce(ctx context.Context, doc *script.Document, record *sheet.Record) (*Result, error)
}
