package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/domains/reservation/model"
	"kampus/internal/storage"
	"kampus/shared/constant"
	gRepo "kampus/shared/repository"
)

type Reservation interface {
	Load(ctx context.Context) ([]model.Reservation, error)
	Save(ctx context.Context, reservations []model.Reservation) error
}

func New(store storage.Storage, otel otel.Otel, m *metrics.Metrics) Reservation {
	return gRepo.NewSnapshot[model.Reservation](model.EntityName, constant.StorageKeyReservations, store, otel, m)
}
