package main

import (
	"context"
	"os"

	"kampus/config"
	"kampus/di"
	"kampus/shared/logger"
	"kampus/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Warn().Err(err).Msg("Continuing with UTC")
	}

	ctx := context.Background()

	app, err := di.InitializeCLI(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	os.Exit(app.Run(ctx, os.Args[1:], os.Stdout))
}
