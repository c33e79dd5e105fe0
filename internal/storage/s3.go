package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

const snapshotContentType = "application/json"

// S3API is the subset of *s3.Client the backend needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Storage struct {
	client S3API
	bucket string
}

// NewS3 stores one object per key in bucket.
func NewS3(client S3API, bucket string) Storage {
	return &s3Storage{client: client, bucket: bucket}
}

func (s *s3Storage) Get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", ErrNotFound
		}

		log.Error().Err(err).Str("key", key).Str("bucket", s.bucket).Msg("failed to get object")

		return "", fmt.Errorf("failed to get s3 object: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read s3 object: %w", err)
	}

	return string(body), nil
}

func (s *s3Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(value),
		ContentType: aws.String(snapshotContentType),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("bucket", s.bucket).Msg("failed to put object")

		return fmt.Errorf("failed to put s3 object: %w", err)
	}

	return nil
}

func (s *s3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("bucket", s.bucket).Msg("failed to delete object")

		return fmt.Errorf("failed to delete s3 object: %w", err)
	}

	return nil
}

func (s *s3Storage) Close() error {
	return nil
}
