// Package storage is the durable string-keyed store that snapshots are written to.
// Every backend stores opaque strings; encoding is the caller's concern.
package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"errors"
	"kampus/infras/otel"
	"kampus/shared/constant"
)

// ErrNotFound is returned by Get when nothing was ever stored under the key.
var ErrNotFound = errors.New("storage: key not found")

type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type prefixed struct {
	Storage
	prefix string
}

// WithPrefix namespaces every key, so several deployments can share one backend.
func WithPrefix(s Storage, prefix string) Storage {
	if prefix == "" {
		return s
	}

	return &prefixed{Storage: s, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.Storage.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.Storage.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.Storage.Delete(ctx, p.prefix+key)
}

type traced struct {
	Storage
	otel   otel.Otel
	driver string
}

// WithTracing opens a span around every call.
func WithTracing(s Storage, ot otel.Otel, driver string) Storage {
	return &traced{Storage: s, otel: ot, driver: driver}
}

func (t *traced) Get(ctx context.Context, key string) (value string, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, t.driver+".Get")
	defer scope.End()
	defer func() {
		if !errors.Is(err, ErrNotFound) {
			scope.TraceIfError(err)
		}
	}()

	scope.SetAttribute(constant.OtelStorageKeyAttribute, key)

	return t.Storage.Get(ctx, key)
}

func (t *traced) Set(ctx context.Context, key, value string) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, t.driver+".Set")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelStorageKeyAttribute: key,
		"storage.bytes":                  len(value),
	})

	return t.Storage.Set(ctx, key, value)
}

func (t *traced) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, t.driver+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelStorageKeyAttribute, key)

	return t.Storage.Delete(ctx, key)
}
