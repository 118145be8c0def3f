package social

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/video"
)

// SimulatedPublisher reports a successful post without calling any API.
type SimulatedPublisher struct {
	now func() time.Time
}

func NewSimulatedPublisher() *SimulatedPublisher {
	return &SimulatedPublisher{now: time.Now}
}

func (p *SimulatedPublisher) Publish(_ context.Context, vid *video.Result, _ *script.Document, record *sheet.Record) (*Outcome, error) {
	mediaID := fmt.Sprintf("sim_media_%d", p.now().Unix())

	slog.Info("Simulated publish", "media_id", mediaID, "product", record.ProductName, "video_id", vid.VideoID)
	return &Outcome{
		Status:  OutcomeSuccess,
		Message: "video posted to 1 social media accounts",
		MediaID: mediaID,
		Posts: []PostResult{{
			Platform:  "simulated",
			Account:   "Account_1",
			Status:    "posted",
			PostID:    fmt.Sprintf("sp_%s_0", mediaID),
			URL:       fmt.Sprintf(dashboardURLFormat, mediaID),
			Timestamp: p.now().UTC(),
		}},
	}, nil
}
