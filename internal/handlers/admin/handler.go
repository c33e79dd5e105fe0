package admin

import (
	"context"

	"kampus/infras/metrics"
	"kampus/infras/otel"
	"kampus/internal/session"
	"kampus/shared/constant"
	"kampus/transport/cli/command"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/response"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Reporter summarizes the stores for the dashboard.
type Reporter interface {
	Stats(ctx context.Context) session.Stats
}

type Handler struct {
	reporter Reporter
	metrics  *metrics.Metrics
	auth     middleware.AuthRole
	otel     otel.Otel
}

func New(reporter Reporter, metrics *metrics.Metrics, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		reporter: reporter,
		metrics:  metrics,
		auth:     auth,
		otel:     otel,
	}
}

func (handler *Handler) Router(root *cobra.Command) {
	group := command.Group("admin", "Administrator overview")

	stats := &cobra.Command{Use: "stats", Short: "Facilities and reservations per status", Args: command.NoArgs}
	counters := &cobra.Command{Use: "metrics", Short: "Store counters of this run", Args: command.NoArgs}

	group.AddCommand(
		command.Handle(stats, handler.GetStats, handler.auth.Admin),
		command.Handle(counters, handler.GetMetrics, handler.auth.Admin),
	)

	root.AddCommand(group)
}

func (handler *Handler) GetStats(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetStats")
	defer scope.End()

	response.WithJSON(cmd.OutOrStdout(), handler.reporter.Stats(ctx))

	return nil
}

func (handler *Handler) GetMetrics(cmd *cobra.Command, _ []string) error {
	_, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetMetrics")
	defer scope.End()

	snapshot, err := handler.metrics.Snapshot()
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to gather metrics")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), snapshot)

	return nil
}
