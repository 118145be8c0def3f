package video

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/pkg/httputil"
)

const (
	defaultPollInterval = 30 * time.Second
	defaultPollTimeout  = 600 * time.Second
	videoNamePrefix     = "Nature's Way"
	videoNameTimeLayout = "20060102_1504"
)

// PictoryClient renders scripts through the Pictory API: client-credentials
// token handshake, job submission, then bounded status polling. A job that
// is still rendering when the timeout elapses is reported as processing, not
// as an error.
type PictoryClient struct {
	baseURL      string
	clientID     string
	language     string
	visualStyle  string
	pollInterval time.Duration
	pollTimeout  time.Duration
	oauth        *clientcredentials.Config
}

type PictoryOptions struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Language     string
	VisualStyle  string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type jobScene struct {
	Text            string `json:"text"`
	VoiceOver       bool   `json:"voiceOver"`
	Duration        int    `json:"duration"`
	BackgroundMusic string `json:"backgroundMusic"`
	VisualStyle     string `json:"visualStyle"`
}

type jobRequest struct {
	VideoName string     `json:"videoName"`
	Language  string     `json:"language"`
	Scenes    []jobScene `json:"scenes"`
}

type jobResponse struct {
	Job struct {
		ID string `json:"id"`
	} `json:"job"`
}

type jobStatusResponse struct {
	Data struct {
		Status   string `json:"status"`
		VideoURL string `json:"videoURL"`
	} `json:"data"`
}

func NewPictoryClient(opts PictoryOptions) *PictoryClient {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = defaultPollTimeout
	}
	if opts.Language == "" {
		opts.Language = "en"
	}

	return &PictoryClient{
		baseURL:      opts.BaseURL,
		clientID:     opts.ClientID,
		language:     opts.Language,
		visualStyle:  opts.VisualStyle,
		pollInterval: opts.PollInterval,
		pollTimeout:  opts.PollTimeout,
		oauth: &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.BaseURL + "/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

func (c *PictoryClient) Produce(ctx context.Context, doc *script.Document, record *sheet.Record) (*Result, error) {
	if _, err := c.oauth.Token(ctx); err != nil {
		return nil, fmt.Errorf("pictory auth: %w", err)
	}
	client := httputil.NewClient(c.oauth.Client(ctx))

	jobID, err := c.submitJob(ctx, client, doc, record)
	if err != nil {
		return nil, err
	}
	slog.Info("Video job submitted", "job_id", jobID, "product", record.ProductName)

	return c.awaitJob(ctx, client, jobID)
}

func (c *PictoryClient) submitJob(ctx context.Context, client *httputil.Client, doc *script.Document, record *sheet.Record) (string, error) {
	req := jobRequest{
		VideoName: fmt.Sprintf("%s - %s - %s", videoNamePrefix, record.ProductName, time.Now().Format(videoNameTimeLayout)),
		Language:  c.language,
		Scenes:    make([]jobScene, 0, len(doc.Scenes)),
	}
	for _, scene := range doc.Scenes {
		req.Scenes = append(req.Scenes, jobScene{
			Text:            scene.Text,
			VoiceOver:       true,
			Duration:        scene.Duration,
			BackgroundMusic: scene.BackgroundMusic,
			VisualStyle:     c.visualStyle,
		})
	}

	var resp jobResponse
	if err := client.PostJSON(ctx, c.baseURL+"/video/create", c.headers(), req, &resp); err != nil {
		return "", fmt.Errorf("submit video job: %w", err)
	}
	if resp.Job.ID == "" {
		return "", fmt.Errorf("submit video job: no job id in response")
	}
	return resp.Job.ID, nil
}

// awaitJob polls until the job reaches a terminal state or the timeout
// elapses. The timeout is not an error; the job is reported as processing
// and a later run can pick the row up again.
func (c *PictoryClient) awaitJob(ctx context.Context, client *httputil.Client, jobID string) (*Result, error) {
	deadline := time.Now().Add(c.pollTimeout)

	for {
		var status jobStatusResponse
		err := client.GetJSON(ctx, c.baseURL+"/jobs/"+jobID, c.headers(), &status)
		switch {
		case err != nil:
			slog.Warn("Video status check failed", "job_id", jobID, "error", err)
		case status.Data.Status == string(StatusCompleted):
			slog.Info("Video completed", "job_id", jobID, "url", status.Data.VideoURL)
			return &Result{VideoID: jobID, VideoURL: status.Data.VideoURL, Status: StatusCompleted}, nil
		case status.Data.Status == string(StatusFailed):
			slog.Error("Video render failed", "job_id", jobID)
			return &Result{VideoID: jobID, Status: StatusFailed}, nil
		default:
			slog.Info("Video still rendering", "job_id", jobID, "status", status.Data.Status)
		}

		if time.Now().Add(c.pollInterval).After(deadline) {
			slog.Warn("Video render timed out, leaving job pending", "job_id", jobID)
			return &Result{VideoID: jobID, Status: StatusProcessing}, nil
		}
		if err := sleep(ctx, c.pollInterval); err != nil {
			return nil, err
		}
	}
}

func (c *PictoryClient) headers() map[string]string {
	return map[string]string{"X-Pictory-User-Id": c.clientID}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
