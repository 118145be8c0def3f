package social

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/video"
	"vidpilot/pkg/httputil"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAccounts = 3
	dashboardURLFormat = "https://socialpilot.co/posts/%s"
)

// authScheme is one way of presenting the API key. The SocialPilot API has
// shifted header conventions between versions, so schemes are tried in order
// and the first accepted one sticks for the rest of the session.
type authScheme int

const (
	authBearer authScheme = iota
	authAPIKey
	authXAPIKey
)

var authSchemes = []authScheme{authBearer, authAPIKey, authXAPIKey}

func (s authScheme) String() string {
	switch s {
	case authBearer:
		return "Bearer"
	case authAPIKey:
		return "API-Key"
	case authXAPIKey:
		return "X-API-Key"
	}
	return "unknown"
}

func (s authScheme) headers(key string) map[string]string {
	switch s {
	case authBearer:
		return map[string]string{"Authorization": "Bearer " + key}
	case authAPIKey:
		return map[string]string{"Authorization": "API-Key " + key}
	default:
		return map[string]string{"X-API-Key": key}
	}
}

// SocialPilotClient publishes videos through the SocialPilot API.
type SocialPilotClient struct {
	baseURL     string
	apiKey      string
	maxAccounts int
	client      *httputil.Client

	scheme    authScheme
	schemeSet bool
}

type Options struct {
	BaseURL     string
	APIKey      string
	MaxAccounts int
}

type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type accountsResponse struct {
	Data []Account `json:"data"`
}

type mediaResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func NewSocialPilotClient(opts Options) *SocialPilotClient {
	if opts.MaxAccounts <= 0 {
		opts.MaxAccounts = defaultMaxAccounts
	}

	return &SocialPilotClient{
		baseURL:     opts.BaseURL,
		apiKey:      opts.APIKey,
		maxAccounts: opts.MaxAccounts,
		client:      httputil.NewClient(&http.Client{Timeout: defaultTimeout}),
	}
}

// Publish discovers destinations, uploads the media once, then creates a
// single post addressed to a capped subset of accounts. Every failure
// short-circuits into an error outcome; the caller never sees a partial
// success reported as success.
func (c *SocialPilotClient) Publish(ctx context.Context, vid *video.Result, doc *script.Document, record *sheet.Record) (*Outcome, error) {
	accounts, err := c.discoverAccounts(ctx)
	if err != nil {
		return errorOutcome(fmt.Sprintf("account discovery failed: %v", err)), nil
	}
	if len(accounts) == 0 {
		return errorOutcome("no connected social media accounts found"), nil
	}
	slog.Info("Discovered social accounts", "count", len(accounts))

	mediaID, err := c.uploadMedia(ctx, vid.VideoURL)
	if err != nil {
		return errorOutcome(fmt.Sprintf("media upload failed: %v", err)), nil
	}
	slog.Info("Media uploaded", "media_id", mediaID)

	targets := accounts
	if len(targets) > c.maxAccounts {
		targets = targets[:c.maxAccounts]
	}

	if err := c.createPost(ctx, targets, doc.Caption(), mediaID); err != nil {
		return errorOutcome(fmt.Sprintf("post creation failed: %v", err)), nil
	}

	posts := make([]PostResult, 0, len(targets))
	now := time.Now().UTC()
	for i, account := range targets {
		name := account.Name
		if name == "" {
			name = fmt.Sprintf("Account_%d", i+1)
		}
		posts = append(posts, PostResult{
			Platform:  strings.ToLower(account.Type),
			Account:   name,
			Status:    "posted",
			PostID:    fmt.Sprintf("sp_%s_%d", mediaID, i),
			URL:       fmt.Sprintf(dashboardURLFormat, mediaID),
			Timestamp: now,
		})
	}

	slog.Info("Video published", "accounts", len(posts), "product", record.ProductName)
	return &Outcome{
		Status:  OutcomeSuccess,
		Message: fmt.Sprintf("video posted to %d social media accounts", len(posts)),
		Posts:   posts,
		MediaID: mediaID,
	}, nil
}

// discoverAccounts walks the auth schemes until one is accepted.
func (c *SocialPilotClient) discoverAccounts(ctx context.Context) ([]Account, error) {
	if c.schemeSet {
		var resp accountsResponse
		if err := c.client.GetJSON(ctx, c.baseURL+"/accounts", c.scheme.headers(c.apiKey), &resp); err != nil {
			return nil, err
		}
		return resp.Data, nil
	}

	var lastErr error
	for _, scheme := range authSchemes {
		var resp accountsResponse
		err := c.client.GetJSON(ctx, c.baseURL+"/accounts", scheme.headers(c.apiKey), &resp)
		if err == nil {
			slog.Info("Auth scheme accepted", "scheme", scheme.String())
			c.scheme = scheme
			c.schemeSet = true
			return resp.Data, nil
		}
		slog.Warn("Auth scheme rejected", "scheme", scheme.String(), "error", err)
		lastErr = err
	}

	return nil, fmt.Errorf("all auth schemes rejected: %w", lastErr)
}

func (c *SocialPilotClient) uploadMedia(ctx context.Context, videoURL string) (string, error) {
	payload := map[string]string{"url": videoURL}

	var resp mediaResponse
	if err := c.client.PostJSON(ctx, c.baseURL+"/media", c.scheme.headers(c.apiKey), payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("no media id in response")
	}
	return resp.Data.ID, nil
}

func (c *SocialPilotClient) createPost(ctx context.Context, targets []Account, text, mediaID string) error {
	ids := make([]string, len(targets))
	for i, account := range targets {
		ids[i] = account.ID
	}

	payload := map[string]any{
		"accounts":      ids,
		"text":          text,
		"media":         []string{mediaID},
		"schedule_time": nil, // post immediately
	}
	return c.client.PostJSON(ctx, c.baseURL+"/posts", c.scheme.headers(c.apiKey), payload, nil)
}
