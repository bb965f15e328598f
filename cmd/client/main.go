package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/gig-sync/internal/client"
	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("gig-sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("gig-sync-client", cfg.App.LogFile)
	if cfg.App.Headless {
		log = logger.NewLogger("gig-sync-client")
	}

	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("version", buildInfo.Version).
		Str("date", buildInfo.Date).
		Str("commit", buildInfo.Commit).
		Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}
