package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"geofighter/internal/config"
	"geofighter/internal/desktop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := cfg.NewLogger(os.Stderr)

	if err := desktop.RunDesktop(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
