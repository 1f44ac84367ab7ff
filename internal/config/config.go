package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Deployment modes understood by the storage factory
const (
	DeploymentLocal = "local"
	DeploymentGCS   = "gcs"
)

// Config holds all configuration for the food CPI dashboard
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// Dataset configuration
	DataPath      string `env:"DATA_PATH,default=USDA_75_23_CPI.csv"`
	DataDir       string `env:"DATA_DIR,default=./data"`
	DataSourceURL string `env:"DATA_SOURCE_URL"`
	ViewsFile     string `env:"VIEWS_FILE"`
	MockupMode    bool   `env:"MOCKUP_MODE,default=false"`

	// Storage configuration
	DeploymentMode string `env:"DEPLOYMENT_MODE,default=local"`
	GCPProjectID   string `env:"GCP_PROJECT_ID"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option combinations envconfig cannot express
func (c *Config) Validate() error {
	switch c.DeploymentMode {
	case DeploymentLocal:
	case DeploymentGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when DEPLOYMENT_MODE=%s", DeploymentGCS)
		}
	default:
		return fmt.Errorf("unsupported deployment mode: %q", c.DeploymentMode)
	}
	if c.DataPath == "" {
		return fmt.Errorf("DATA_PATH must not be empty")
	}
	return nil
}
