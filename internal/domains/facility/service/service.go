package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/domains/facility/model"
	"kampus/internal/domains/facility/model/dto"
	"kampus/internal/domains/facility/repository"
	"kampus/internal/storage"
	"kampus/shared/constant"
	"kampus/shared/failure"
	gRepo "kampus/shared/repository"
	"kampus/shared/timezone"
	"kampus/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
)

// Facility owns the facility catalog. Every mutation is persisted before it becomes
// visible; callbacks run after the change, outside the store lock.
type Facility interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateFacilityRequest, onSuccess ...func(model.Facility)) (model.Facility, error)
	Update(ctx context.Context, id string, req dto.UpdateFacilityRequest, onSuccess ...func(model.Facility)) (model.Facility, error)
	Delete(ctx context.Context, id string, onSuccess ...func(model.Facility)) error
	GetAll(ctx context.Context) []model.Facility
	Get(ctx context.Context, id string) (model.Facility, error)
}

type serviceImpl struct {
	mu         sync.RWMutex
	facilities []model.Facility
	repo       repository.Facility
	otel       otel.Otel
	metrics    *metrics.Metrics
}

func New(repo repository.Facility, otel otel.Otel, m *metrics.Metrics) Facility {
	return &serviceImpl{
		facilities: []model.Facility{},
		repo:       repo,
		otel:       otel,
		metrics:    m,
	}
}

// Load restores the last snapshot. A missing or corrupt snapshot is replaced with the
// default catalog, which is written back immediately.
func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	facilities, err := s.repo.Load(ctx)

	switch {
	case err == nil:
		s.facilities = facilities
		scope.SetAttribute("facility.count", len(facilities))

		return nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, gRepo.ErrCorrupt):
		seed := model.Seed(timezone.Now())

		if err = s.repo.Save(ctx, seed); err != nil {
			log.Error().Err(err).Msg("failed to save default facilities")

			return fmt.Errorf("failed to save default facilities: %w", err)
		}

		s.facilities = seed
		scope.AddEvent("seeded default facilities")

		log.Info().Int("count", len(seed)).Msg("Seeded default facilities")

		return nil
	default:
		log.Error().Err(err).Msg("failed to load facilities")

		return fmt.Errorf("failed to load facilities: %w", err)
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFacilityRequest, onSuccess ...func(model.Facility)) (res model.Facility, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveMutation(model.EntityName, operationCreate, err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	facility := req.ToModel()
	scope.SetAttribute(constant.OtelEntityIDAttribute, facility.ID)

	err = s.commit(ctx, func(current []model.Facility) ([]model.Facility, error) {
		return append(current, facility), nil
	})
	if err != nil {
		return res, err
	}

	res = facility.Clone()
	notify(res, onSuccess)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateFacilityRequest, onSuccess ...func(model.Facility)) (res model.Facility, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveMutation(model.EntityName, operationUpdate, err) }()

	scope.SetAttribute(constant.OtelEntityIDAttribute, id)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	err = s.commit(ctx, func(current []model.Facility) ([]model.Facility, error) {
		idx := slices.IndexFunc(current, func(f model.Facility) bool { return f.ID == id })
		if idx < 0 {
			return nil, failure.NotFound("facility not found") // nolint:wrapcheck
		}

		current[idx] = req.Apply(current[idx])
		res = current[idx].Clone()

		return current, nil
	})
	if err != nil {
		return model.Facility{}, err
	}

	notify(res, onSuccess)

	return res, nil
}

// Delete removes the facility. Reservations that reference it are left untouched.
func (s *serviceImpl) Delete(ctx context.Context, id string, onSuccess ...func(model.Facility)) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveMutation(model.EntityName, operationDelete, err) }()

	scope.SetAttribute(constant.OtelEntityIDAttribute, id)

	var removed model.Facility

	err = s.commit(ctx, func(current []model.Facility) ([]model.Facility, error) {
		idx := slices.IndexFunc(current, func(f model.Facility) bool { return f.ID == id })
		if idx < 0 {
			return nil, failure.NotFound("facility not found") // nolint:wrapcheck
		}

		removed = current[idx].Clone()

		return slices.Delete(current, idx, idx+1), nil
	})
	if err != nil {
		return err
	}

	notify(removed, onSuccess)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context) []model.Facility {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.GetAll")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.CloneAll(s.facilities)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Facility, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".facility.Get")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, facility := range s.facilities {
		if facility.ID == id {
			return facility.Clone(), nil
		}
	}

	return model.Facility{}, failure.NotFound("facility not found") // nolint:wrapcheck
}

// commit applies change to a private copy of the catalog, persists the copy and only
// then swaps it in. A failed write leaves the catalog as it was.
func (s *serviceImpl) commit(ctx context.Context, change func([]model.Facility) ([]model.Facility, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := change(model.CloneAll(s.facilities))
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		log.Error().Err(err).Msg("failed to save facilities")

		return fmt.Errorf("failed to save facilities: %w", err)
	}

	s.facilities = next

	return nil
}

func notify(facility model.Facility, callbacks []func(model.Facility)) {
	for _, callback := range callbacks {
		if callback != nil {
			callback(facility.Clone())
		}
	}
}
