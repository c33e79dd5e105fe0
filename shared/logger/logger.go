package logger

import (
	"kampus/config"
	"kampus/shared/constant"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes to stderr so that stdout stays reserved for command output.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// SetLogLevel applies SERVER_LOG_LEVEL. Without a valid level the CLI stays quiet
// (warn) unless SERVER_ENV is development (debug).
func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.WarnLevel
		if config.Server.Env == constant.ServerEnvDevelopment {
			level = zerolog.DebugLevel
		}

		zerolog.SetGlobalLevel(level)
		log.Debug().Str("loglevel", level.String()).Msg("Environment has no valid log level set up, using default.")

		return
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
}
