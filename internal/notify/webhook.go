package notify

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"vidpilot/pkg/httputil"
)

const (
	postTimeout = 10 * time.Second
	queueSize   = 8
)

// Event is the run summary pushed to the automation webhook.
type Event struct {
	Status    string    `json:"status"`
	Row       int       `json:"row"`
	Product   string    `json:"product_name,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier delivers run events on a best-effort basis. Delivery failures
// never surface to the pipeline.
type Notifier interface {
	Notify(event *Event)
	Close()
}

// WebhookNotifier posts events to a webhook from a background worker, so a
// slow or dead endpoint cannot stall a run. Events are dropped with a warning
// when the queue is full.
type WebhookNotifier struct {
	url    string
	client *httputil.Client
	events chan *Event
	done   chan struct{}
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		client: httputil.NewClient(&http.Client{Timeout: postTimeout}),
		events: make(chan *Event, queueSize),
		done:   make(chan struct{}),
	}
	go n.deliver()
	return n
}

func (n *WebhookNotifier) Notify(event *Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case n.events <- event:
	default:
		slog.Warn("Notification queue full, dropping event", "row", event.Row, "status", event.Status)
	}
}

// Close stops accepting events and waits for queued deliveries to finish.
func (n *WebhookNotifier) Close() {
	close(n.events)
	<-n.done
}

func (n *WebhookNotifier) deliver() {
	defer close(n.done)

	for event := range n.events {
		ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
		err := n.client.PostJSON(ctx, n.url, nil, event, nil)
		cancel()

		if err != nil {
			slog.Warn("Webhook delivery failed", "row", event.Row, "error", err)
			continue
		}
		slog.Info("Webhook delivered", "row", event.Row, "status", event.Status)
	}
}

// NoopNotifier discards every event. Used when no webhook is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(event *Event) {
	slog.Debug("Notification skipped, no webhook configured", "row", event.Row)
}

func (NoopNotifier) Close() {}
