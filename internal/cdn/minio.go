package cdn

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/config"
)

// New connects to the object storage backing media uploads.
func New(cfg config.MinioConfig) (*minio.Client, error) {
	client, err := minio.New(fmt.Sprintf("%s:%d", cfg.Endpoint, cfg.Port), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}
	return client, nil
}

// EnsureBucket creates the media bucket when it does not exist yet, so
// uploads never fail on a fresh deployment.
func EnsureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if exists {
		return nil
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", bucket, err)
	}
	log.Info().Str("bucket", bucket).Msg("Created object storage bucket")
	return nil
}
