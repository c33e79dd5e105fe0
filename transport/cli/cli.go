package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"kampus/config"
	"kampus/internal/events"
	"kampus/internal/session"
	"kampus/transport/cli/command"
	"kampus/transport/cli/response"
	"kampus/transport/cli/router"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type CLI struct {
	Config  *config.Config
	Router  router.Router
	Session *session.Session
	Events  events.Publisher
}

func New(cfg *config.Config, r router.Router, s *session.Session, publisher events.Publisher) *CLI {
	return &CLI{
		Config:  cfg,
		Router:  r,
		Session: s,
		Events:  publisher,
	}
}

// Command builds the command tree. Flag values live on the commands, so every run needs
// a fresh tree.
func (c *CLI) Command() *cobra.Command {
	root := command.Group(c.Config.App.Name, "Campus facility booking")
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(command.FlagError)
	root.PersistentFlags().String(command.TokenFlag, c.Config.CLI.Token, "access token; the persisted session is used when empty")

	c.Router.SetupRoutes(root)

	return root
}

// Run executes one command and returns the process exit code. The session is opened
// right before the command's handler and closed after it; help and usage errors never
// touch storage. An interrupt cancels the command's context.
func (c *CLI) Run(ctx context.Context, args []string, stdout io.Writer) int {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opened := false

	root := c.Command()
	command.Use(root, c.openSession(&opened))
	// cobra reads os.Args when given nil.
	root.SetArgs(append([]string{}, args...))
	root.SetOut(stdout)

	err := root.ExecuteContext(ctx)

	if opened {
		if closeErr := errors.Join(c.Events.Close(), c.Session.Close(context.WithoutCancel(ctx))); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close session")
		}
	}

	if err != nil {
		if ctx.Err() != nil {
			log.Warn().Msg("Received SIGTERM. Command interrupted.")
		}

		response.WithError(stdout, err)

		return response.ExitCode(err)
	}

	return response.ExitOK
}

func (c *CLI) openSession(opened *bool) command.Middleware {
	return func(next command.HandlerFunc) command.HandlerFunc {
		return func(cmd *cobra.Command, args []string) error {
			if err := c.Session.Open(cmd.Context()); err != nil {
				log.Error().Err(err).Msg("Failed to open session")

				return err //nolint:wrapcheck
			}

			*opened = true

			return next(cmd, args)
		}
	}
}
