package auth

import (
	"kampus/infras/otel"
	"kampus/internal/domains/identity/model"
	"kampus/internal/domains/identity/model/dto"
	"kampus/internal/domains/identity/service"
	"kampus/shared/constant"
	"kampus/transport/cli/command"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/response"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type Handler struct {
	service service.Identity
	auth    middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Identity, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(root *cobra.Command) {
	group := command.Group("auth", "Sign in and out")

	login := &cobra.Command{Use: "login", Short: "Sign in and print the token pair", Args: command.NoArgs}
	login.Flags().String("email", constant.Empty, "account email")
	login.Flags().String("password", constant.Empty, "account password")

	register := &cobra.Command{Use: "register", Short: "Create an account and sign in", Args: command.NoArgs}
	register.Flags().String("name", constant.Empty, "display name")
	register.Flags().String("email", constant.Empty, "account email")
	register.Flags().String("password", constant.Empty, "at least six characters")

	logout := &cobra.Command{Use: "logout", Short: "Forget the signed-in user", Args: command.NoArgs}
	whoami := &cobra.Command{Use: "whoami", Short: "Show the signed-in user", Args: command.NoArgs}

	group.AddCommand(
		command.Handle(login, handler.Login),
		command.Handle(register, handler.Register),
		command.Handle(logout, handler.Logout),
		command.Handle(whoami, handler.WhoAmI, handler.auth.Auth),
	)

	root.AddCommand(group)
}

// Login prints the signed-in user together with the token pair. The access token can be
// passed to later commands with --token.
func (handler *Handler) Login(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".Login")
	defer scope.End()

	var body dto.LoginRequest

	body.Email, _ = cmd.Flags().GetString("email")
	body.Password, _ = cmd.Flags().GetString("password")

	session, err := handler.service.Login(ctx, body)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to login")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), session)

	return nil
}

func (handler *Handler) Register(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".Register")
	defer scope.End()

	var body dto.RegisterRequest

	body.Name, _ = cmd.Flags().GetString("name")
	body.Email, _ = cmd.Flags().GetString("email")
	body.Password, _ = cmd.Flags().GetString("password")

	session, err := handler.service.Register(ctx, body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), session)

	return nil
}

func (handler *Handler) Logout(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		return err //nolint:wrapcheck
	}

	response.WithMessage(cmd.OutOrStdout(), "Signed out")

	return nil
}

func (handler *Handler) WhoAmI(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".WhoAmI")
	defer scope.End()

	identity, _ := model.FromContext(ctx)

	user, err := handler.service.CurrentUser(ctx)
	if err != nil || user.ID != identity.UserID {
		// Signed in with --token only: the directory entry is not at hand.
		response.WithJSON(cmd.OutOrStdout(), map[string]any{"id": identity.UserID, "role": identity.Role})

		return nil
	}

	response.WithJSON(cmd.OutOrStdout(), user)

	return nil
}
