package social

import (
	"context"
	"time"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/video"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// PostResult is the per-destination record of one posting attempt.
type PostResult struct {
	Platform  string    `json:"platform"`
	Account   string    `json:"account"`
	Status    string    `json:"status"`
	PostID    string    `json:"post_id"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}

// Outcome summarizes a publish attempt. Partial progress (media uploaded but
// post creation failed) is still an error outcome.
type Outcome struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Posts   []PostResult `json:"posts,omitempty"`
	MediaID string       `json:"media_id,omitempty"`
}

func (o *Outcome) Succeeded() bool {
	return o != nil && o.Status == OutcomeSuccess
}

// Publisher pushes a finished video out to social destinations.
type Publisher interface {
	Publish(ctx context.Context, vid *video.Result, doc *script.Document, record *sheet.Record) (*Outcome, error)
}

func errorOutcome(message string) *Outcome {
	return &Outcome{Status: OutcomeError, Message: message}
}
