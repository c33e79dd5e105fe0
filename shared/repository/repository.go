// Package repository keeps whole collections as JSON snapshots in a storage.Storage.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/storage"
	"kampus/shared/constant"

	"github.com/rs/zerolog/log"
)

// ErrCorrupt is returned by Load when the stored payload cannot be decoded. The payload
// has already been copied to the quarantine key by then.
var ErrCorrupt = errors.New("snapshot is corrupt")

type Snapshot[T any] struct {
	key     string
	entity  string
	storage storage.Storage
	otel    otel.Otel
	metrics *metrics.Metrics
}

func NewSnapshot[T any](entity, key string, store storage.Storage, otl otel.Otel, m *metrics.Metrics) *Snapshot[T] {
	return &Snapshot[T]{
		key:     key,
		entity:  entity,
		storage: store,
		otel:    otl,
		metrics: m,
	}
}

func (repo *Snapshot[T]) Key() string {
	return repo.key
}

// Save writes the full collection. A nil or empty collection is written as [] so that an
// emptied store is not mistaken for one that was never saved.
func (repo *Snapshot[T]) Save(ctx context.Context, items []T) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Save", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelStorageKeyAttribute: repo.key,
		"snapshot.items":                 len(items),
	})

	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot (%s): %w", repo.entity, err)
	}

	err = repo.storage.Set(ctx, repo.key, string(payload))
	repo.metrics.ObserveSnapshotWrite(repo.key, err)

	if err != nil {
		log.Error().Err(err).Str("key", repo.key).Msg("failed to write snapshot")

		return fmt.Errorf("failed to write snapshot (%s): %w", repo.entity, err)
	}

	return nil
}

// Load returns the stored collection, storage.ErrNotFound when nothing was saved yet, or
// ErrCorrupt when the payload does not decode.
func (repo *Snapshot[T]) Load(ctx context.Context) (items []T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	scope.SetAttribute(constant.OtelStorageKeyAttribute, repo.key)

	raw, err := repo.storage.Get(ctx, repo.key)
	if errors.Is(err, storage.ErrNotFound) {
		repo.metrics.ObserveFallback(repo.key, metrics.FallbackMissing)
		scope.AddEvent("snapshot missing")

		return nil, storage.ErrNotFound
	}

	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to read snapshot (%s): %w", repo.entity, err)
	}

	if err = json.Unmarshal([]byte(raw), &items); err != nil {
		repo.quarantine(ctx, raw, err)
		scope.TraceError(err)

		return nil, fmt.Errorf("%w (%s): %w", ErrCorrupt, repo.entity, err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (repo *Snapshot[T]) quarantine(ctx context.Context, raw string, cause error) {
	repo.metrics.ObserveFallback(repo.key, metrics.FallbackCorrupt)

	target := repo.key + constant.StorageCorruptSuffix

	if err := repo.storage.Set(ctx, target, raw); err != nil {
		log.Error().Err(err).Str("key", target).Msg("failed to preserve corrupt snapshot")

		return
	}

	log.Warn().Err(cause).Str("key", repo.key).Str("preserved", target).Msg("snapshot is corrupt, falling back to defaults")
}
