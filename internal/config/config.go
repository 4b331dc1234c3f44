package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage modes
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the snapshot service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Resort list (YAML)
	ResortsFile string `env:"RESORTS_FILE,default=./resorts.yaml"`

	// Data source URLs shared by all resorts
	ForecastURL  string `env:"FORECAST_URL,default=https://api.open-meteo.com/v1/forecast"`
	AvalancheURL string `env:"AVALANCHE_URL,default=https://static.avalanche.report/bulletins/latest/EUREGIO_en_CAAMLv6.json"`

	// Fetch behaviour
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT,default=15s"`
	FetchRetries    int           `env:"FETCH_RETRIES,default=2"`
	MaxRedirects    int           `env:"MAX_REDIRECTS,default=5"`
	Workers         int           `env:"WORKERS,default=4"`
	DefaultTimezone string        `env:"DEFAULT_TIMEZONE,default=Europe/Rome"`

	// Periodic refresh when running as a service; zero disables it
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL,default=0s"`

	// Output storage
	StorageMode     string `env:"STORAGE_MODE,default=local"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	GCPProjectID    string `env:"GCP_PROJECT_ID"`
	GCSBucket       string `env:"GCS_BUCKET"`

	// OpenAI configuration (optional digest)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1-mini"`

	// Fixture replay instead of network access
	MockupMode bool   `env:"MOCKUP_MODE,default=false"`
	MocksDir   string `env:"MOCKS_DIR,default=./internal/mocks/data"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags
func (c *Config) Validate() error {
	switch c.StorageMode {
	case StorageLocal:
		if c.LocalReportsDir == "" {
			return fmt.Errorf("LOCAL_REPORTS_DIR is required for local storage")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for gcs storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("FETCH_RETRIES must not be negative, got %d", c.FetchRetries)
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("MAX_REDIRECTS must not be negative, got %d", c.MaxRedirects)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", c.RefreshInterval)
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err)
	}
	return nil
}
