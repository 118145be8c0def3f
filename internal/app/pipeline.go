package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"vidpilot/internal/notify"
	"vidpilot/internal/sheet"
	"vidpilot/internal/storage"
	"vidpilot/internal/video"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Pipeline drives one row through fetch, script, video, publish and notify.
// The cursor only advances after a fully successful run, so a failed row is
// retried on the next run instead of silently skipped.
type Pipeline struct {
	service *Service
}

// RunResult is what one pipeline invocation came to.
type RunResult struct {
	Row      int
	Status   string
	Message  string
	Product  string
	VideoID  string
	VideoURL string
	Posts    int
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Run processes the current row end to end.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()
	row := p.service.Store().Read()
	slog.Info("Starting run", "row", row)

	result := p.process(ctx, row)

	switch result.Status {
	case StatusSkipped:
		slog.Info("Nothing to process", "row", row)
		return result, nil
	case StatusSuccess:
		p.finish(ctx, result, started)
		if err := p.service.Store().Advance(); err != nil {
			// The run itself succeeded; a stuck cursor means the same row
			// repeats next run, which is safe to post twice only by operator
			// action, so shout about it.
			slog.Error("Cursor advance failed, next run repeats this row", "row", row, "error", err)
		}
		slog.Info("Run complete", "row", row, "product", result.Product, "posts", result.Posts)
		return result, nil
	default:
		p.finish(ctx, result, started)
		slog.Error("Run failed", "row", row, "message", result.Message)
		return result, fmt.Errorf("row %d: %s", row, result.Message)
	}
}

func (p *Pipeline) process(ctx context.Context, row int) *RunResult {
	result := &RunResult{Row: row, Status: StatusError}

	record, err := p.service.Rows().Fetch(ctx, row)
	if errors.Is(err, sheet.ErrRowNotFound) {
		result.Status = StatusSkipped
		result.Message = "no unprocessed rows left"
		return result
	}
	if err != nil {
		result.Message = fmt.Sprintf("fetch row: %v", err)
		return result
	}
	result.Product = record.ProductName

	doc, err := p.service.Synthesizer().Synthesize(ctx, record)
	if err != nil {
		result.Message = fmt.Sprintf("synthesize script: %v", err)
		return result
	}
	slog.Info("Script ready", "product", doc.ProductName, "duration", doc.TotalDuration)

	vid, err := p.service.Producer().Produce(ctx, doc, record)
	if err != nil {
		result.Message = fmt.Sprintf("produce video: %v", err)
		return result
	}
	result.VideoID = vid.VideoID
	result.VideoURL = vid.VideoURL

	switch vid.Status {
	case video.StatusFailed:
		result.Message = "video render failed"
		return result
	case video.StatusProcessing:
		result.Message = "video still rendering, row retried next run"
		return result
	}

	outcome, err := p.service.Publisher().Publish(ctx, vid, doc, record)
	if err != nil {
		result.Message = fmt.Sprintf("publish: %v", err)
		return result
	}
	if !outcome.Succeeded() {
		result.Message = outcome.Message
		return result
	}

	result.Status = StatusSuccess
	result.Message = outcome.Message
	result.Posts = len(outcome.Posts)
	return result
}

// finish fans the run result out to the webhook and the archive. Both are
// best-effort and never change the run's status.
func (p *Pipeline) finish(ctx context.Context, result *RunResult, started time.Time) {
	p.service.Notifier().Notify(&notify.Event{
		Status:   result.Status,
		Row:      result.Row,
		Product:  result.Product,
		VideoURL: result.VideoURL,
		Message:  result.Message,
	})

	summary := &storage.RunSummary{
		Row:       result.Row,
		Status:    result.Status,
		Product:   result.Product,
		VideoID:   result.VideoID,
		VideoURL:  result.VideoURL,
		Message:   result.Message,
		Posts:     result.Posts,
		StartedAt: started,
		Duration:  time.Since(started).Round(time.Second).String(),
	}
	if path, err := p.service.Archive().SaveSummary(ctx, summary); err != nil {
		slog.Warn("Run summary not archived", "row", result.Row, "error", err)
	} else {
		slog.Info("Run summary archived", "path", path)
	}
}
