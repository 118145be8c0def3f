package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"vidpilot/internal/notify"
	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/social"
	"vidpilot/internal/state"
	"vidpilot/internal/storage"
	"vidpilot/internal/video"
	"vidpilot/pkg/config"
)

type fakeRows struct {
	records map[int]*sheet.Record
	err     error
}

func (f *fakeRows) Fetch(_ context.Context, row int) (*sheet.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[row]
	if !ok {
		return nil, sheet.ErrRowNotFound
	}
	return record, nil
}

type fakeProducer struct {
	result *video.Result
	err    error
	calls  int
}

func (f *fakeProducer) Produce(_ context.Context, _ *script.Document, _ *sheet.Record) (*video.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakePublisher struct {
	outcome *social.Outcome
	err     error
	calls   int
}

func (f *fakePublisher) Publish(_ context.Context, _ *video.Result, _ *script.Document, _ *sheet.Record) (*social.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

type captureNotifier struct {
	events []*notify.Event
}

func (c *captureNotifier) Notify(event *notify.Event) { c.events = append(c.events, event) }
func (c *captureNotifier) Close()                     {}

type fixture struct {
	store     *state.CursorStore
	rows      *fakeRows
	producer  *fakeProducer
	publisher *fakePublisher
	notifier  *captureNotifier
	pipeline  *Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		store: state.NewCursorStore(filepath.Join(dir, "row_state.json")),
		rows: &fakeRows{records: map[int]*sheet.Record{
			2: sheet.NewRecord(map[string]string{"title": "Kelp Booster – Improves Root Growth"}),
		}},
		producer: &fakeProducer{result: &video.Result{
			VideoID:  "job-42",
			VideoURL: "https://cdn.example.com/v.mp4",
			Status:   video.StatusCompleted,
		}},
		publisher: &fakePublisher{outcome: &social.Outcome{
			Status:  social.OutcomeSuccess,
			Message: "video posted to 2 social media accounts",
			Posts:   []social.PostResult{{Platform: "facebook"}, {Platform: "instagram"}},
		}},
		notifier: &captureNotifier{},
	}

	cfg := &config.Config{}
	service := NewService(ServiceOptions{
		Config:      cfg,
		Store:       f.store,
		Rows:        f.rows,
		Synthesizer: script.NewTemplateSynthesizer(),
		Producer:    f.producer,
		Publisher:   f.publisher,
		Notifier:    f.notifier,
		Archive:     storage.NewLocalArchive(filepath.Join(dir, "output")),
	})
	f.pipeline = NewPipeline(service)
	return f
}

func TestRunSuccessAdvancesCursor(t *testing.T) {
	f := newFixture(t)

	result, err := f.pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Status != StatusSuccess {
		t.Errorf("Status = %q, want success", result.Status)
	}
	if result.Row != 2 {
		t.Errorf("Row = %d, want 2", result.Row)
	}
	if result.Posts != 2 {
		t.Errorf("Posts = %d, want 2", result.Posts)
	}
	if result.Product != "Kelp Booster" {
		t.Errorf("Product = %q", result.Product)
	}
	if got := f.store.Read(); got != 3 {
		t.Errorf("cursor = %d after success, want 3", got)
	}

	if len(f.notifier.events) != 1 {
		t.Fatalf("got %d notifications, want 1", len(f.notifier.events))
	}
	event := f.notifier.events[0]
	if event.Status != StatusSuccess || event.Row != 2 || event.VideoURL == "" {
		t.Errorf("event = %+v", event)
	}
}

func TestRunNoRowsIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.rows.records = nil

	result, err := f.pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Status != StatusSkipped {
		t.Errorf("Status = %q, want skipped", result.Status)
	}
	if got := f.store.Read(); got != 2 {
		t.Errorf("cursor = %d, want unchanged 2", got)
	}
	if f.producer.calls != 0 || f.publisher.calls != 0 {
		t.Error("produce/publish called with no row")
	}
	if len(f.notifier.events) != 0 {
		t.Errorf("got %d notifications for a no-op run, want 0", len(f.notifier.events))
	}
}

func TestRunFetchErrorFailsWithoutAdvance(t *testing.T) {
	f := newFixture(t)
	f.rows.err = fmt.Errorf("sheet unreachable")

	if _, err := f.pipeline.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error")
	}
	if got := f.store.Read(); got != 2 {
		t.Errorf("cursor = %d after failure, want 2", got)
	}
	if f.producer.calls != 0 {
		t.Error("produce called after fetch failure")
	}
}

func TestRunVideoFailedNoAdvance(t *testing.T) {
	f := newFixture(t)
	f.producer.result = &video.Result{VideoID: "job-9", Status: video.StatusFailed}

	_, err := f.pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if got := f.store.Read(); got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
	if f.publisher.calls != 0 {
		t.Error("publish called after failed render")
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Status != StatusError {
		t.Errorf("events = %+v, want one error event", f.notifier.events)
	}
}

func TestRunVideoStillProcessingNoAdvance(t *testing.T) {
	f := newFixture(t)
	f.producer.result = &video.Result{VideoID: "job-9", Status: video.StatusProcessing}

	_, err := f.pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if got := f.store.Read(); got != 2 {
		t.Errorf("cursor = %d, want 2 so the row is retried", got)
	}
	if f.publisher.calls != 0 {
		t.Error("publish called while video still rendering")
	}
}

func TestRunPublishErrorNoAdvance(t *testing.T) {
	f := newFixture(t)
	f.publisher.outcome = &social.Outcome{
		Status:  social.OutcomeError,
		Message: "no connected social media accounts found",
	}

	_, err := f.pipeline.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error")
	}

	if got := f.store.Read(); got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
	if len(f.notifier.events) != 1 {
		t.Fatalf("got %d notifications, want 1", len(f.notifier.events))
	}
	if f.notifier.events[0].Message != "no connected social media accounts found" {
		t.Errorf("event message = %q", f.notifier.events[0].Message)
	}
}

func TestRunSequenceWalksRows(t *testing.T) {
	f := newFixture(t)
	f.rows.records[3] = sheet.NewRecord(map[string]string{"title": "Humic Acid Blend – Soil Health"})

	for want := 2; want <= 3; want++ {
		result, err := f.pipeline.Run(context.Background())
		if err != nil {
			t.Fatalf("Run() row %d error = %v", want, err)
		}
		if result.Row != want {
			t.Errorf("Row = %d, want %d", result.Row, want)
		}
	}

	result, err := f.pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Status != StatusSkipped {
		t.Errorf("Status = %q after all rows, want skipped", result.Status)
	}
	if got := f.store.Read(); got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}
}
