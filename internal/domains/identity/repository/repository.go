package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/domains/identity/model"
	"kampus/internal/storage"
	"kampus/shared/constant"
	gRepo "kampus/shared/repository"

	"github.com/rs/zerolog/log"
)

type Account interface {
	Load(ctx context.Context) ([]model.Account, error)
	Save(ctx context.Context, accounts []model.Account) error
}

func NewAccount(store storage.Storage, otel otel.Otel, m *metrics.Metrics) Account {
	return gRepo.NewSnapshot[model.Account](model.EntityName, constant.StorageKeyUsers, store, otel, m)
}

// Session stores the single signed-in user under the "user" key.
type Session interface {
	Get(ctx context.Context) (model.Session, error)
	Save(ctx context.Context, session model.Session) error
	Delete(ctx context.Context) error
}

type sessionImpl struct {
	storage storage.Storage
	otel    otel.Otel
}

func NewSession(store storage.Storage, otel otel.Otel) Session {
	return &sessionImpl{storage: store, otel: otel}
}

// Get returns storage.ErrNotFound when nobody is signed in. An unreadable session is
// treated the same way.
func (r *sessionImpl) Get(ctx context.Context) (session model.Session, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Get")
	defer scope.End()

	raw, err := r.storage.Get(ctx, constant.StorageKeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			scope.TraceError(err)

			return session, fmt.Errorf("failed to read session: %w", err)
		}

		return session, storage.ErrNotFound
	}

	if err = json.Unmarshal([]byte(raw), &session); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session")

		return model.Session{}, storage.ErrNotFound
	}

	return session, nil
}

func (r *sessionImpl) Save(ctx context.Context, session model.Session) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err = r.storage.Set(ctx, constant.StorageKeyUser, string(payload)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

func (r *sessionImpl) Delete(ctx context.Context) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.storage.Delete(ctx, constant.StorageKeyUser); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
