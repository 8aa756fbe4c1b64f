package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"

	appconfig "github.com/imrishuroy/go-order-ingestor/internal/config"
)

// LoadAWSConfig builds the SDK config for the configured region. When an
// endpoint override is set (LocalStack and friends) every client built from
// the returned config talks to it.
func LoadAWSConfig(ctx context.Context, cfg appconfig.Config) (sdkaws.Config, error) {
	region := cfg.Region
	if region == "" {
		region = appconfig.DefaultRegion
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if cfg.EndpointOverride != "" {
		opts = append(opts, config.WithBaseEndpoint(cfg.EndpointOverride))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awsCfg, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsCfg, nil
}
