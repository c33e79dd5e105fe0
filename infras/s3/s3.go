package s3

import (
	"context"
	"fmt"
	"kampus/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const defaultRegion = "auto"

// New builds an S3 client for the snapshot bucket. Static credentials are used when
// configured, otherwise the default AWS credential chain applies.
func New(ctx context.Context, config *config.Config) (*s3.Client, error) {
	s3Config := config.Storage.S3

	options := []func(*awsConfig.LoadOptions) error{}

	if s3Config.AccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3Config.AccessKey,
			s3Config.SecretKey,
			"",
		)))
	}

	region := s3Config.Region
	if region == "" {
		region = defaultRegion
	}

	options = append(options, awsConfig.WithRegion(region))

	cfg, err := awsConfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")

		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
			o.UsePathStyle = true
		}
	})

	log.Info().
		Str("bucket", s3Config.BucketName).
		Str("region", region).
		Msg("S3 client initialized")

	return client, nil
}
