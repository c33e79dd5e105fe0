package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type redisStorage struct {
	client *redis.Client
}

// NewRedis stores each key as a plain redis string without expiry.
func NewRedis(client *redis.Client) Storage {
	return &redisStorage{client: client}
}

func (r *redisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", "redis").Msg("failed to get value")

		return "", fmt.Errorf("failed to get redis value: %w", err)
	}

	return value, nil
}

func (r *redisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", "redis").Msg("failed to set value")

		return fmt.Errorf("failed to set redis value: %w", err)
	}

	return nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", "redis").Msg("failed to delete value")

		return fmt.Errorf("failed to delete redis value: %w", err)
	}

	return nil
}

func (r *redisStorage) Close() error {
	return r.client.Close()
}
