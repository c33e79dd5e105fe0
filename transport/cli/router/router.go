package router

import (
	"kampus/internal/handlers/admin"
	"kampus/internal/handlers/auth"
	"kampus/internal/handlers/facility"
	"kampus/internal/handlers/reservation"
	"kampus/transport/cli/command"
	"kampus/transport/cli/middleware"

	"github.com/spf13/cobra"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Facility    facility.Handler
	Reservation reservation.Handler
	Admin       admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
}

// SetupRoutes registers every domain's commands under root and traces all of them.
func (r *Router) SetupRoutes(root *cobra.Command) {
	r.DomainHandlers.Auth.Router(root)
	r.DomainHandlers.Facility.Router(root)
	r.DomainHandlers.Reservation.Router(root)
	r.DomainHandlers.Admin.Router(root)

	command.Use(root, r.App.Tracing)
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
	}
}
