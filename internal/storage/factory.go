package storage

import (
	"context"
	"fmt"
	"kampus/config"
	"kampus/helper"
	"kampus/infras/otel"
	"kampus/infras/postgres"
	"kampus/infras/redis"
	"kampus/infras/s3"
	"kampus/infras/sqlite"
	"kampus/shared/constant"

	"github.com/rs/zerolog/log"
)

// New opens the backend named by STORAGE_DRIVER, wrapped with the key prefix and tracing.
func New(ctx context.Context, cfg *config.Config, ot otel.Otel) (Storage, error) {
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = constant.StorageDriverSQLite
	}

	backend, err := open(ctx, cfg, driver)
	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", driver).Str("prefix", cfg.Storage.KeyPrefix).Msg("Storage initialized")

	return WithTracing(WithPrefix(backend, cfg.Storage.KeyPrefix), ot, driver), nil
}

func open(ctx context.Context, cfg *config.Config, driver string) (Storage, error) {
	switch driver {
	case constant.StorageDriverMemory:
		return NewMemory(), nil
	case constant.StorageDriverSQLite:
		db, err := sqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}

		backend, err := NewSQLite(ctx, db)
		if err != nil {
			_ = db.Close()

			return nil, err
		}

		return backend, nil
	case constant.StorageDriverRedis:
		client, err := redis.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis storage: %w", err)
		}

		return NewRedis(client), nil
	case constant.StorageDriverPostgres:
		if cfg.Storage.Postgres.AutoMigrate {
			if err := helper.Up(cfg); err != nil {
				return nil, fmt.Errorf("failed to migrate postgres storage: %w", err)
			}
		}

		db, err := postgres.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}

		return NewPostgres(db), nil
	case constant.StorageDriverS3:
		client, err := s3.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 storage: %w", err)
		}

		return NewS3(client, cfg.Storage.S3.BucketName), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
