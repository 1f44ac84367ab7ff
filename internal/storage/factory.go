package storage

import (
	"context"
	"fmt"

	"foodcpi/internal/config"
)

// NewStorageClient creates a storage client based on the configured deployment mode
func NewStorageClient(ctx context.Context, cfg *config.Config) (StorageClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage configuration is required")
	}

	switch cfg.DeploymentMode {
	case config.DeploymentLocal, "":
		dataDir := cfg.DataDir
		if dataDir == "" {
			dataDir = "data"
		}

		localClient, err := NewLocalStorageClient(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case config.DeploymentGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required for gcs deployment mode")
		}
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", cfg.DeploymentMode)
	}
}
