package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
)

func testDocument() *script.Document {
	return &script.Document{
		Hook:      "Why are your plants struggling to thrive?",
		Education: "Because soil.",
		CTA:       "Visit natureswaysoil.com",
		Scenes: []script.Scene{
			{Number: 1, Duration: 7, Text: "hook", BackgroundMusic: "upbeat_gardening"},
			{Number: 2, Duration: 18, Text: "education", BackgroundMusic: "educational_calm"},
			{Number: 3, Duration: 5, Text: "cta", BackgroundMusic: "upbeat_conclusion"},
		},
		TotalDuration: 30,
		ProductName:   "Kelp Booster",
	}
}

func testRecord() *sheet.Record {
	return sheet.NewRecord(map[string]string{"title": "Kelp Booster – Improves Root Growth"})
}

// pictoryHandler fakes the token, create and status endpoints.
func pictoryHandler(t *testing.T, statuses []string, videoURL string) http.HandlerFunc {
	var polls int32
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`))
		case "/video/create":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("Authorization = %q, want bearer token", got)
			}
			var req jobRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode job request: %v", err)
			}
			if len(req.Scenes) != 3 {
				t.Errorf("job has %d scenes, want 3", len(req.Scenes))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"job": map[string]string{"id": "job-42"}})
		case "/jobs/job-42":
			n := atomic.AddInt32(&polls, 1)
			status := statuses[len(statuses)-1]
			if int(n) <= len(statuses) {
				status = statuses[n-1]
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]string{"status": status, "videoURL": videoURL},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func newTestClient(baseURL string, timeout time.Duration) *PictoryClient {
	return NewPictoryClient(PictoryOptions{
		BaseURL:      baseURL,
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		VisualStyle:  "nature_gardening",
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  timeout,
	})
}

func TestProduceCompleted(t *testing.T) {
	server := httptest.NewServer(pictoryHandler(t, []string{"in-progress", "completed"}, "https://cdn.example.com/v.mp4"))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	result, err := client.Produce(context.Background(), testDocument(), testRecord())
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}
	if result.VideoID != "job-42" {
		t.Errorf("VideoID = %q, want job-42", result.VideoID)
	}
	if result.VideoURL != "https://cdn.example.com/v.mp4" {
		t.Errorf("VideoURL = %q", result.VideoURL)
	}
}

func TestProduceFailedJob(t *testing.T) {
	server := httptest.NewServer(pictoryHandler(t, []string{"failed"}, ""))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	result, err := client.Produce(context.Background(), testDocument(), testRecord())
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}

	if result.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", result.Status)
	}
	if result.VideoURL != "" {
		t.Errorf("VideoURL = %q, want empty on failure", result.VideoURL)
	}
}

func TestProduceTimeoutYieldsProcessing(t *testing.T) {
	server := httptest.NewServer(pictoryHandler(t, []string{"in-progress"}, ""))
	defer server.Close()

	client := newTestClient(server.URL, 15*time.Millisecond)
	result, err := client.Produce(context.Background(), testDocument(), testRecord())
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}

	if result.Status != StatusProcessing {
		t.Errorf("Status = %q, want processing after timeout", result.Status)
	}
	if result.VideoID != "job-42" {
		t.Errorf("VideoID = %q, want job-42 so a later run can re-check", result.VideoID)
	}
}

func TestProduceAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)
	if _, err := client.Produce(context.Background(), testDocument(), testRecord()); err == nil {
		t.Error("Produce() expected error on auth failure")
	}
}

func TestSimulatedProduce(t *testing.T) {
	sim := NewSimulated()
	result, err := sim.Produce(context.Background(), testDocument(), testRecord())
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}

	if result.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", result.Status)
	}
	if result.VideoID == "" || result.VideoURL == "" {
		t.Errorf("simulated result incomplete: %+v", result)
	}
}
