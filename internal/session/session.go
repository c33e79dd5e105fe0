// Package session owns the stores of one running application. Nothing is global; every
// caller receives the session explicitly.
package session

import (
	"context"
	"errors"
	"fmt"

	"kampus/infras/metrics"
	"kampus/infras/otel"
	facilityModel "kampus/internal/domains/facility/model"
	facilityService "kampus/internal/domains/facility/service"
	identityService "kampus/internal/domains/identity/service"
	reservationModel "kampus/internal/domains/reservation/model"
	reservationDto "kampus/internal/domains/reservation/model/dto"
	reservationService "kampus/internal/domains/reservation/service"
	"kampus/internal/storage"
	"kampus/shared/constant"
	"kampus/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Session struct {
	Facilities   facilityService.Facility
	Reservations reservationService.Reservation
	Identity     identityService.Identity
	Metrics      *metrics.Metrics

	storage storage.Storage
	otel    otel.Otel
}

func New(
	store storage.Storage,
	facilities facilityService.Facility,
	reservations reservationService.Reservation,
	identity identityService.Identity,
	m *metrics.Metrics,
	otel otel.Otel,
) *Session {
	return &Session{
		Facilities:   facilities,
		Reservations: reservations,
		Identity:     identity,
		Metrics:      m,
		storage:      store,
		otel:         otel,
	}
}

// Open loads every store from storage. The loads are independent and run concurrently.
func (s *Session) Open(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".session.Open")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error { return s.Facilities.Load(gctx) })
	group.Go(func() error { return s.Reservations.Load(gctx) })
	group.Go(func() error { return s.Identity.Load(gctx) })

	if err = group.Wait(); err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	log.Debug().Int("facilities", len(s.Facilities.GetAll(ctx))).Int("reservations", len(s.Reservations.GetAll(ctx))).Msg("Session opened")

	return nil
}

// SubmitReservation fills in the facility name from the catalog when the caller left it
// empty. A facility that does not exist is not an error.
func (s *Session) SubmitReservation(ctx context.Context, req reservationDto.SubmitReservationRequest, onSuccess ...func(reservationModel.Reservation)) (reservationModel.Reservation, error) {
	if req.FacilityName == constant.Empty {
		facility, err := s.Facilities.Get(ctx, req.FacilityID)
		if err != nil && !failure.IsNotFound(err) {
			return reservationModel.Reservation{}, err
		}

		req.FacilityName = facility.Name
	}

	return s.Reservations.Submit(ctx, req, onSuccess...) //nolint:wrapcheck
}

type Stats struct {
	Facilities   map[facilityModel.Status]int    `json:"facilities"`
	Reservations map[reservationModel.Status]int `json:"reservations"`
}

// Stats is the administrator overview: facilities and reservations per status.
func (s *Session) Stats(ctx context.Context) Stats {
	facilities := map[facilityModel.Status]int{
		facilityModel.StatusAvailable:   0,
		facilityModel.StatusMaintenance: 0,
		facilityModel.StatusUnavailable: 0,
	}

	for _, facility := range s.Facilities.GetAll(ctx) {
		facilities[facility.Status]++
	}

	return Stats{
		Facilities:   facilities,
		Reservations: s.Reservations.CountByStatus(ctx),
	}
}

func (s *Session) Close(ctx context.Context) error {
	return errors.Join(s.storage.Close(), s.otel.Shutdown(ctx))
}
