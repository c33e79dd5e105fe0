//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"kampus/config"
	"kampus/infras/jwt"
	"kampus/infras/kafka"
	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/events"
	"kampus/internal/session"
	"kampus/internal/storage"
	"kampus/transport/cli"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/router"

	facilityRepository "kampus/internal/domains/facility/repository"
	facilityService "kampus/internal/domains/facility/service"

	reservationRepository "kampus/internal/domains/reservation/repository"
	reservationService "kampus/internal/domains/reservation/service"

	identityRepository "kampus/internal/domains/identity/repository"
	identityService "kampus/internal/domains/identity/service"

	adminHandler "kampus/internal/handlers/admin"
	authHandler "kampus/internal/handlers/auth"
	facilityHandler "kampus/internal/handlers/facility"
	reservationHandler "kampus/internal/handlers/reservation"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	metrics.New,
	jwt.New,
	kafka.New,
	storage.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var identityDomain = wire.NewSet(
	identityRepository.NewAccount,
	identityRepository.NewSession,
	identityService.New,
)

var domains = wire.NewSet(
	facilityDomain,
	reservationDomain,
	identityDomain,
	session.New,
	events.NewPublisher,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(reservationHandler.Submitter), new(*session.Session)),
	wire.Bind(new(adminHandler.Reporter), new(*session.Session)),
	authHandler.New,
	facilityHandler.New,
	reservationHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeCLI(ctx context.Context) (*cli.CLI, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		domains,
		routing,
		cli.New,
	)

	return &cli.CLI{}, nil
}
