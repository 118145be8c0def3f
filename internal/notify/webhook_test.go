package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestWebhookNotifierDelivers(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decode event: %v", err)
		}
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	notifier.Notify(&Event{Status: "success", Row: 5, Product: "Kelp Booster", Message: "published"})
	notifier.Notify(&Event{Status: "error", Row: 6, Message: "render failed"})
	notifier.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("received %d events, want 2", len(received))
	}
	if received[0].Row != 5 || received[0].Status != "success" {
		t.Errorf("first event = %+v", received[0])
	}
	if received[0].Timestamp.IsZero() {
		t.Error("timestamp not stamped on send")
	}
	if received[1].Row != 6 || received[1].Status != "error" {
		t.Errorf("second event = %+v", received[1])
	}
}

func TestWebhookNotifierSurvivesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	notifier.Notify(&Event{Status: "success", Row: 2, Message: "published"})

	done := make(chan struct{})
	go func() {
		notifier.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close() hung after delivery failure")
	}
}

func TestNoopNotifier(t *testing.T) {
	var n Notifier = NoopNotifier{}
	n.Notify(&Event{Status: "success", Row: 2})
	n.Close()
}
