package aws

import (
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
)

// Settings selects the region and, optionally, static credentials. Without
// static credentials the SDK default chain applies (environment, shared
// config, instance role).
type Settings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Clients bundles the S3 and Transcribe clients built from one SDK config.
type Clients struct {
	S3         *s3.Client
	Transcribe *transcribe.Client
	Region     string
}

// New loads the SDK configuration and builds both service clients.
func New(ctx context.Context, settings Settings) (*Clients, error) {
	cfg, err := LoadConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	return &Clients{
		S3:         s3.NewFromConfig(cfg),
		Transcribe: transcribe.NewFromConfig(cfg),
		Region:     cfg.Region,
	}, nil
}

// LoadConfig resolves an aws.Config for settings.
func LoadConfig(ctx context.Context, settings Settings) (sdkaws.Config, error) {
	opts := loadOptions(settings)
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return sdkaws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	if strings.TrimSpace(cfg.Region) == "" {
		return sdkaws.Config{}, fmt.Errorf("load aws config: no region configured")
	}
	return cfg, nil
}

func loadOptions(settings Settings) []func(*awsconfig.LoadOptions) error {
	var opts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(settings.Region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	key := strings.TrimSpace(settings.AccessKeyID)
	secret := strings.TrimSpace(settings.SecretAccessKey)
	if key != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}
	return opts
}
