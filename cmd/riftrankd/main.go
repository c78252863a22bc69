package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/riftline-labs/riftrank/internal/config"
	"github.com/riftline-labs/riftrank/internal/keeper"
	"github.com/riftline-labs/riftrank/internal/statsapi"
	"github.com/riftline-labs/riftrank/internal/utils/logger"
	"github.com/riftline-labs/riftrank/pkg/servekit"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting riftrankd...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	profile := config.DefaultProfile()
	if cfg.ProfilePath != "" {
		profile, err = config.LoadProfile(cfg.ProfilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load rating profile")
		}
	}

	var api statsapi.StatsAPIInterface
	if cfg.StatsAPIUrl != "" {
		s, err := statsapi.NewStatsAPI(&cfg.StatsAPIEnvConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init stats api client")
		}
		api = s
	}

	k, err := keeper.NewKeeper(cfg, profile, api)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init keeper")
	}

	server := servekit.NewServer(&servekit.ServerConfig{
		Host:      cfg.Host,
		Port:      cfg.Port,
		BodyLimit: cfg.BodySizeLimit,
	})
	k.RegisterRoutes(server)

	// setup signal handling for graceful shutdown before starting the keeper
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutdown signal received, stopping keeper")
		k.Stop()
		if err := server.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	k.Start()
	go server.Start()

	// wait until the keeper context is cancelled (k.Stop will call Cancel)
	<-k.Ctx.Done()
	log.Info().Msg("riftrankd stopped")
}
