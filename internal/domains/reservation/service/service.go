package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"kampus/config"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/domains/reservation/model"
	"kampus/internal/domains/reservation/model/dto"
	"kampus/internal/domains/reservation/repository"
	"kampus/internal/storage"
	"kampus/shared/constant"
	"kampus/shared/failure"
	gRepo "kampus/shared/repository"
	"kampus/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	operationSubmit     = "submit"
	operationTransition = "transition"
)

type Reservation interface {
	Load(ctx context.Context) error
	Submit(ctx context.Context, req dto.SubmitReservationRequest, onSuccess ...func(model.Reservation)) (model.Reservation, error)
	TransitionStatus(ctx context.Context, id string, status model.Status, adminNote string, onSuccess ...func(model.Reservation)) (model.Reservation, error)
	GetAll(ctx context.Context) []model.Reservation
	Get(ctx context.Context, id string) (model.Reservation, error)
	ByUser(ctx context.Context, userID string) []model.Reservation
	ByFacility(ctx context.Context, facilityID string) []model.Reservation
	ByStatus(ctx context.Context, status model.Status) []model.Reservation
	CountByStatus(ctx context.Context) map[model.Status]int
}

type serviceImpl struct {
	mu            sync.RWMutex
	reservations  []model.Reservation
	repo          repository.Reservation
	otel          otel.Otel
	metrics       *metrics.Metrics
	allowRedecide bool
}

func New(repo repository.Reservation, cfg *config.Config, otel otel.Otel, m *metrics.Metrics) Reservation {
	return &serviceImpl{
		reservations:  []model.Reservation{},
		repo:          repo,
		otel:          otel,
		metrics:       m,
		allowRedecide: cfg.App.Reservation.AllowRedecide,
	}
}

// Load restores the last snapshot. A missing or corrupt snapshot starts the store empty.
func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	reservations, err := s.repo.Load(ctx)

	switch {
	case err == nil:
		s.reservations = reservations
		scope.SetAttribute("reservation.count", len(reservations))

		return nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, gRepo.ErrCorrupt):
		s.reservations = []model.Reservation{}
		scope.AddEvent("started empty")

		return nil
	default:
		log.Error().Err(err).Msg("failed to load reservations")

		return fmt.Errorf("failed to load reservations: %w", err)
	}
}

// Submit records a new request. The facility reference is not checked against the
// catalog and overlapping requests are accepted.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitReservationRequest, onSuccess ...func(model.Reservation)) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveMutation(model.EntityName, operationSubmit, err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if err = req.CheckTimeRange(); err != nil {
		return res, err
	}

	reservation := req.ToModel()
	scope.SetAttributes(map[string]any{
		constant.OtelEntityIDAttribute: reservation.ID,
		"reservation.facility_id":      reservation.FacilityID,
	})

	err = s.commit(ctx, func(current []model.Reservation) ([]model.Reservation, error) {
		return append(current, reservation), nil
	})
	if err != nil {
		return res, err
	}

	notify(reservation, onSuccess)

	return reservation, nil
}

// TransitionStatus records an administrator decision. Unless re-deciding is enabled,
// only pending reservations can be decided.
func (s *serviceImpl) TransitionStatus(ctx context.Context, id string, status model.Status, adminNote string, onSuccess ...func(model.Reservation)) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.TransitionStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveMutation(model.EntityName, operationTransition, err) }()

	scope.SetAttributes(map[string]any{
		constant.OtelEntityIDAttribute: id,
		"reservation.status":           string(status),
	})

	req := dto.TransitionStatusRequest{Status: status, AdminNote: adminNote}
	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	err = s.commit(ctx, func(current []model.Reservation) ([]model.Reservation, error) {
		idx := slices.IndexFunc(current, func(r model.Reservation) bool { return r.ID == id })
		if idx < 0 {
			return nil, failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		if current[idx].Status != model.StatusPending && !s.allowRedecide {
			return nil, failure.Conflict(fmt.Sprintf("reservation already %s", current[idx].Status)) // nolint:wrapcheck
		}

		current[idx].Status = req.Status
		if req.AdminNote != constant.Empty {
			current[idx].AdminNote = req.AdminNote
		}

		res = current[idx]

		return current, nil
	})
	if err != nil {
		return model.Reservation{}, err
	}

	notify(res, onSuccess)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) []model.Reservation {
	return s.filter(ctx, "GetAll", func(model.Reservation) bool { return true })
}

func (s *serviceImpl) Get(ctx context.Context, id string) (model.Reservation, error) {
	found := s.filter(ctx, "Get", func(r model.Reservation) bool { return r.ID == id })
	if len(found) == 0 {
		return model.Reservation{}, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return found[0], nil
}

func (s *serviceImpl) ByUser(ctx context.Context, userID string) []model.Reservation {
	return s.filter(ctx, "ByUser", func(r model.Reservation) bool { return r.UserID == userID })
}

func (s *serviceImpl) ByFacility(ctx context.Context, facilityID string) []model.Reservation {
	return s.filter(ctx, "ByFacility", func(r model.Reservation) bool { return r.FacilityID == facilityID })
}

func (s *serviceImpl) ByStatus(ctx context.Context, status model.Status) []model.Reservation {
	return s.filter(ctx, "ByStatus", func(r model.Reservation) bool { return r.Status == status })
}

// CountByStatus always reports every status, including those with no reservations.
func (s *serviceImpl) CountByStatus(ctx context.Context) map[model.Status]int {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CountByStatus")
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[model.Status]int, len(model.Statuses))
	for _, status := range model.Statuses {
		counts[status] = 0
	}

	for _, reservation := range s.reservations {
		counts[reservation.Status]++
	}

	return counts
}

func (s *serviceImpl) filter(ctx context.Context, name string, keep func(model.Reservation) bool) []model.Reservation {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation."+name)
	defer scope.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Reservation{}

	for _, reservation := range s.reservations {
		if keep(reservation) {
			out = append(out, reservation)
		}
	}

	return out
}

func (s *serviceImpl) commit(ctx context.Context, change func([]model.Reservation) ([]model.Reservation, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := change(slices.Clone(s.reservations))
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		log.Error().Err(err).Msg("failed to save reservations")

		return fmt.Errorf("failed to save reservations: %w", err)
	}

	s.reservations = next

	return nil
}

func notify(reservation model.Reservation, callbacks []func(model.Reservation)) {
	for _, callback := range callbacks {
		if callback != nil {
			callback(reservation)
		}
	}
}
