package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"

	"vidpilot/internal/notify"
	"vidpilot/internal/script"
	"vidpilot/internal/sheet"
	"vidpilot/internal/social"
	"vidpilot/internal/state"
	"vidpilot/internal/storage"
	"vidpilot/internal/video"
	"vidpilot/pkg/config"
)

// Keys pulled from AWS-era deployments arrive KMS-encrypted with this prefix
// and are unusable as-is.
const encryptedKeyPrefix = "AQICA"

const webhookPlaceholder = "YOUR_WEBHOOK_ID"

// BuildService wires the pipeline from configuration. Every integration with
// missing or unusable credentials degrades to a simulated stand-in, loudly,
// so a bare checkout still produces a full dry run.
func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	if cfg.Sheet.ID == "" {
		return nil, fmt.Errorf("no sheet id configured, set SHEET_ID or sheet.id in config.yaml")
	}

	rows, err := buildRows(ctx, cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewService(ServiceOptions{
		Config:      cfg,
		Store:       state.NewCursorStore(cfg.State.Path),
		Rows:        rows,
		Synthesizer: buildSynthesizer(cfg),
		Producer:    buildProducer(cfg),
		Publisher:   buildPublisher(cfg),
		Notifier:    buildNotifier(cfg),
		Archive:     archive,
	}), nil
}

func buildRows(ctx context.Context, cfg *config.Config) (sheet.Provider, error) {
	var opts []option.ClientOption
	if cfg.SheetsAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.SheetsAPIKey))
	} else {
		slog.Info("No sheets API key, using application default credentials")
	}

	return sheet.NewSheetsProvider(ctx, cfg.Sheet.ID, cfg.Sheet.Range, opts...)
}

func buildSynthesizer(cfg *config.Config) script.Synthesizer {
	base := script.NewTemplateSynthesizer()
	if !usableKey(cfg.GroqAPIKey) {
		slog.Info("No Groq API key, using template scripts")
		return base
	}

	groq, err := script.NewGroqSynthesizer(cfg.GroqAPIKey, cfg.Groq.Model, base)
	if err != nil {
		slog.Warn("Groq client unavailable, using template scripts", "error", err)
		return base
	}
	return groq
}

func buildProducer(cfg *config.Config) video.Producer {
	switch {
	case cfg.Pictory.Simulate:
		slog.Warn("Pictory simulation forced by config")
	case !usableKey(cfg.PictoryClientID) || !usableKey(cfg.PictoryClientSecret):
		slog.Warn("Pictory credentials missing or encrypted, simulating video production")
	default:
		return video.NewPictoryClient(video.PictoryOptions{
			BaseURL:      cfg.Pictory.BaseURL,
			ClientID:     cfg.PictoryClientID,
			ClientSecret: cfg.PictoryClientSecret,
			Language:     cfg.Script.Language,
			VisualStyle:  cfg.Script.VisualStyle,
			PollInterval: time.Duration(cfg.Pictory.PollInterval) * time.Second,
			PollTimeout:  time.Duration(cfg.Pictory.PollTimeout) * time.Second,
		})
	}
	return video.NewSimulated()
}

func buildPublisher(cfg *config.Config) social.Publisher {
	switch {
	case cfg.Social.Simulate:
		slog.Warn("Social publishing simulation forced by config")
	case !usableKey(cfg.SocialPilotAPIKey):
		slog.Warn("SocialPilot key missing or encrypted, simulating publishing")
	default:
		return social.NewSocialPilotClient(social.Options{
			BaseURL:     cfg.Social.BaseURL,
			APIKey:      cfg.SocialPilotAPIKey,
			MaxAccounts: cfg.Social.MaxAccounts,
		})
	}
	return social.NewSimulatedPublisher()
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.WebhookURL == "" || strings.Contains(cfg.WebhookURL, webhookPlaceholder) {
		slog.Info("No webhook configured, notifications disabled")
		return notify.NoopNotifier{}
	}
	return notify.NewWebhookNotifier(cfg.WebhookURL)
}

func buildArchive(ctx context.Context, cfg *config.Config) (storage.Archive, error) {
	if cfg.GCSBucket == "" {
		return storage.NewLocalArchive(cfg.Output.Dir), nil
	}

	archive, err := storage.NewGCSArchive(ctx, cfg.GCSBucket)
	if err != nil {
		slog.Warn("GCS archive unavailable, keeping summaries local", "bucket", cfg.GCSBucket, "error", err)
		return storage.NewLocalArchive(cfg.Output.Dir), nil
	}
	return archive, nil
}

// usableKey reports whether a credential is present and not a ciphertext blob
// copied straight out of an encrypted store.
func usableKey(key string) bool {
	return key != "" && !strings.HasPrefix(key, encryptedKeyPrefix)
}
