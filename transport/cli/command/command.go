// Package command is the cobra glue shared by the command handlers: handler and
// middleware types, group commands and argument validators that report failures.
package command

import (
	"fmt"
	"strings"

	"kampus/shared/constant"
	"kampus/shared/failure"

	"github.com/spf13/cobra"
)

// TokenFlag is the persistent flag carrying an access token. Empty means the persisted
// session is used.
const TokenFlag = "token"

// HandlerFunc has the shape of cobra's RunE.
type HandlerFunc func(cmd *cobra.Command, args []string) error

type Middleware func(HandlerFunc) HandlerFunc

// Chain wraps h so that the first middleware runs outermost.
func Chain(h HandlerFunc, middlewares ...Middleware) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}

// Handle installs h, wrapped with middlewares, as the command's RunE.
func Handle(cmd *cobra.Command, h HandlerFunc, middlewares ...Middleware) *cobra.Command {
	cmd.RunE = Chain(h, middlewares...)

	return cmd
}

// Use wraps every runnable leaf under root with middlewares. Commands added later are
// not affected.
func Use(root *cobra.Command, middlewares ...Middleware) {
	for _, child := range root.Commands() {
		if child.HasSubCommands() {
			Use(child, middlewares...)

			continue
		}

		if child.RunE != nil {
			child.RunE = Chain(child.RunE, middlewares...)
		}
	}
}

// Group returns a command that only routes to its subcommands. Run bare it prints its
// help; anything else left on the command line is an unknown command.
func Group(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return failure.BadRequestFromString(fmt.Sprintf("unknown command %q", strings.TrimSpace(Name(cmd)+" "+args[0]))) //nolint:wrapcheck
			}

			return cmd.Help()
		},
	}
}

// Name is the command path without the program name, e.g. "facility update".
func Name(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return constant.Empty
	}

	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

// Token returns the access token given on the command line, if any.
func Token(cmd *cobra.Command) string {
	token, err := cmd.Flags().GetString(TokenFlag)
	if err != nil {
		return constant.Empty
	}

	return token
}

// NoArgs rejects positional arguments.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return failure.BadRequestFromString(fmt.Sprintf("%s: unexpected argument %q", Name(cmd), args[0])) //nolint:wrapcheck
	}

	return nil
}

// ExactID accepts exactly one non-blank positional id.
func ExactID(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == constant.Empty {
		return failure.BadRequestFromString(Name(cmd) + ": id is required") //nolint:wrapcheck
	}

	if len(args) > 1 {
		return failure.BadRequestFromString(fmt.Sprintf("%s: unexpected argument %q", Name(cmd), args[1])) //nolint:wrapcheck
	}

	return nil
}

// FlagError classifies flag parsing errors as bad requests. Install it on the root
// command; subcommands inherit it.
func FlagError(cmd *cobra.Command, err error) error {
	return failure.BadRequest(fmt.Errorf("%s: %w", strings.TrimSpace(cmd.Root().Name()+" "+Name(cmd)), err)) //nolint:wrapcheck
}
