package middleware

import (
	"time"

	"kampus/config"
	"kampus/infras/otel"
	"kampus/shared/constant"
	"kampus/transport/cli/command"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type AppMiddleware interface {
	Tracing(command.HandlerFunc) command.HandlerFunc
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
}

func NewAppMiddleware(otel otel.Otel, config *config.Config) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
	}
}

// Tracing opens one span per command and logs how long it took.
func (a *appMiddleware) Tracing(next command.HandlerFunc) command.HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		name := command.Name(cmd)

		ctx, scope := a.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, name)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":     a.config.App.Name,
			"command.name": name,
			"command.args": len(args),
		})

		cmd.SetContext(ctx)

		start := time.Now()
		err := next(cmd, args)

		log.Debug().Str("command", name).Dur("elapsed", time.Since(start)).Err(err).Msg("Command finished")

		if err != nil {
			scope.TraceError(err)
		}

		return err
	}
}
