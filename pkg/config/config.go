package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"vidpilot/internal/secrets"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultSheetRange     = "A:Z"
	defaultStatePath      = "./row_state.json"
	defaultOutputDir      = "./output"
	defaultLanguage       = "en"
	defaultVisualStyle    = "nature_gardening"
	defaultPictoryBaseURL = "https://api.pictory.ai/pictoryapis/v1"
	defaultSocialBaseURL  = "https://api.socialpilot.co/v1"
	defaultPollInterval   = 30
	defaultPollTimeout    = 600
	defaultMaxAccounts    = 3
	defaultGroqModel      = "llama-3.3-70b-versatile"
)

// Secret Manager secret names tried for keys absent from the environment.
const (
	secretSocialPilotKey = "socialpilot-api-key"
	secretPictorySecret  = "pictory-client-secret"
)

type Config struct {
	SheetsAPIKey        string
	PictoryClientID     string
	PictoryClientSecret string
	SocialPilotAPIKey   string
	GroqAPIKey          string
	WebhookURL          string
	GCSBucket           string
	GoogleCloudProject  string

	Sheet   SheetConfig   `yaml:"sheet"`
	Script  ScriptConfig  `yaml:"script"`
	Pictory PictoryConfig `yaml:"pictory"`
	Social  SocialConfig  `yaml:"social"`
	State   StateConfig   `yaml:"state"`
	Groq    GroqConfig    `yaml:"groq"`
	Output  OutputConfig  `yaml:"output"`
}

type SheetConfig struct {
	ID    string `yaml:"id"`
	Range string `yaml:"range"`
}

type ScriptConfig struct {
	Language    string `yaml:"language"`
	VisualStyle string `yaml:"visual_style"`
}

type PictoryConfig struct {
	BaseURL      string `yaml:"base_url"`
	PollInterval int    `yaml:"poll_interval"`
	PollTimeout  int    `yaml:"poll_timeout"`
	Simulate     bool   `yaml:"simulate"`
}

type SocialConfig struct {
	BaseURL     string `yaml:"base_url"`
	MaxAccounts int    `yaml:"max_accounts"`
	Simulate    bool   `yaml:"simulate"`
}

type StateConfig struct {
	Path string `yaml:"path"`
}

type GroqConfig struct {
	Model string `yaml:"model"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		SheetsAPIKey:        os.Getenv("GOOGLE_SHEETS_API_KEY"),
		PictoryClientID:     os.Getenv("PICTORY_CLIENT_ID"),
		PictoryClientSecret: os.Getenv("PICTORY_CLIENT_SECRET"),
		SocialPilotAPIKey:   os.Getenv("SOCIALPILOT_API_KEY"),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		WebhookURL:          os.Getenv("ZAPIER_WEBHOOK_URL"),
		GCSBucket:           os.Getenv("GCS_BUCKET"),
		GoogleCloudProject:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	if err := loadYAML(cfg, defaultConfigPath); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	resolveSecrets(ctx, cfg)

	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applySheetDefaults(cfg)
	applyScriptDefaults(cfg)
	applyPictoryDefaults(cfg)
	applySocialDefaults(cfg)
	applyStateDefaults(cfg)
	applyGroqDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applySheetDefaults(cfg *Config) {
	if cfg.Sheet.ID == "" {
		cfg.Sheet.ID = os.Getenv("SHEET_ID")
	}
	if cfg.Sheet.Range == "" {
		cfg.Sheet.Range = defaultSheetRange
	}
}

func applyScriptDefaults(cfg *Config) {
	if cfg.Script.Language == "" {
		cfg.Script.Language = defaultLanguage
	}
	if cfg.Script.VisualStyle == "" {
		cfg.Script.VisualStyle = defaultVisualStyle
	}
}

func applyPictoryDefaults(cfg *Config) {
	if cfg.Pictory.BaseURL == "" {
		cfg.Pictory.BaseURL = defaultPictoryBaseURL
	}
	if cfg.Pictory.PollInterval == 0 {
		cfg.Pictory.PollInterval = defaultPollInterval
	}
	if cfg.Pictory.PollTimeout == 0 {
		cfg.Pictory.PollTimeout = defaultPollTimeout
	}
}

func applySocialDefaults(cfg *Config) {
	if cfg.Social.BaseURL == "" {
		cfg.Social.BaseURL = defaultSocialBaseURL
	}
	if cfg.Social.MaxAccounts == 0 {
		cfg.Social.MaxAccounts = defaultMaxAccounts
	}
}

func applyStateDefaults(cfg *Config) {
	if cfg.State.Path == "" {
		cfg.State.Path = defaultStatePath
	}
}

func applyGroqDefaults(cfg *Config) {
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = defaultGroqModel
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
}

// resolveSecrets fills API keys missing from the environment from Secret
// Manager. Failures are logged and left empty; the builder decides whether a
// missing key means simulation mode or a dead stage.
func resolveSecrets(ctx context.Context, cfg *Config) {
	if cfg.GoogleCloudProject == "" {
		return
	}

	resolver, err := secrets.NewResolver(ctx, cfg.GoogleCloudProject)
	if err != nil {
		slog.Warn("Secret Manager unavailable", "error", err)
		return
	}
	defer func() { _ = resolver.Close() }()

	if cfg.SocialPilotAPIKey == "" {
		cfg.SocialPilotAPIKey = resolver.Lookup(ctx, secretSocialPilotKey)
	}
	if cfg.PictoryClientSecret == "" {
		cfg.PictoryClientSecret = resolver.Lookup(ctx, secretPictorySecret)
	}
}
