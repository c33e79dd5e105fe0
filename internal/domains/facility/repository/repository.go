package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/domains/facility/model"
	"kampus/internal/storage"
	"kampus/shared/constant"
	gRepo "kampus/shared/repository"
)

type Facility interface {
	Load(ctx context.Context) ([]model.Facility, error)
	Save(ctx context.Context, facilities []model.Facility) error
}

func New(store storage.Storage, otel otel.Otel, m *metrics.Metrics) Facility {
	return gRepo.NewSnapshot[model.Facility](model.EntityName, constant.StorageKeyFacilities, store, otel, m)
}
