package middleware

import (
	"kampus/infras/otel"
	"kampus/internal/domains/identity/model"
	identityService "kampus/internal/domains/identity/service"
	"kampus/shared/constant"
	"kampus/shared/failure"
	"kampus/transport/cli/command"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(command.HandlerFunc) command.HandlerFunc
}

// Role defines the interface for role-based access control middleware
type Role interface {
	Admin(command.HandlerFunc) command.HandlerFunc
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	identity identityService.Identity
	otel     otel.Otel
}

func NewAuthRoleMiddleware(identity identityService.Identity, otel otel.Otel) AuthRole {
	return &authRoleImpl{
		identity: identity,
		otel:     otel,
	}
}

// Auth resolves the caller from the --token flag or the persisted session and rejects
// anonymous callers.
func (m *authRoleImpl) Auth(next command.HandlerFunc) command.HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		identity, err := m.resolve(cmd)
		if err != nil {
			return err
		}

		cmd.SetContext(model.WithIdentity(cmd.Context(), identity))

		return next(cmd, args)
	}
}

// Admin is Auth plus the administrator role check.
func (m *authRoleImpl) Admin(next command.HandlerFunc) command.HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		identity, err := m.resolve(cmd)
		if err != nil {
			return err
		}

		if !identity.IsAdmin() {
			log.Warn().Str("command", command.Name(cmd)).Str("user_id", identity.UserID).Msg("Administrator command refused")

			return failure.ForbiddenError
		}

		cmd.SetContext(model.WithIdentity(cmd.Context(), identity))

		return next(cmd, args)
	}
}

func (m *authRoleImpl) resolve(cmd *cobra.Command) (model.Identity, error) {
	ctx, scope := m.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, "auth.middleware")
	defer scope.End()

	token := command.Token(cmd)

	scope.SetAttributes(map[string]any{
		"middleware.type": "auth",
		"command.name":    command.Name(cmd),
		"auth.token":      token != constant.Empty,
	})

	var identity model.Identity

	if token != constant.Empty {
		var err error

		identity, err = m.identity.FromToken(ctx, token)
		if err != nil {
			scope.TraceError(err)

			return model.Identity{}, err //nolint:wrapcheck
		}
	} else {
		identity = m.identity.Current(ctx)
	}

	if !identity.Authenticated {
		scope.TraceError(failure.UnauthenticatedError)

		return model.Identity{}, failure.UnauthenticatedError
	}

	return identity, nil
}
