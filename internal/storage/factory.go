package storage

import (
	"context"
	"fmt"

	"urbantide.com/store/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

// New builds the storage driver selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		return FactoryResult{
			Driver:  "local",
			Storage: NewLocal(cfg.LocalDir, cfg.Bucket, cfg.LocalURLPrefix),
		}, nil

	case "s3":
		bucket := cfg.S3Bucket
		if bucket == "" {
			bucket = cfg.Bucket
		}
		if cfg.S3Region == "" || bucket == "" || cfg.S3PublicBaseURL == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
