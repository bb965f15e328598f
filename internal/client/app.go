package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/gig-sync/internal/adapter"
	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/tui"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/internal/workers"
	"github.com/MKhiriev/gig-sync/models"
)

var errNoUserToken = errors.New("user token is required")

var _ Client = (*App)(nil)

type App struct {
	cfg       *config.ClientConfig
	buildInfo models.BuildInfo

	storages *store.ClientStorages
	probe    adapter.ConnectivityProbe
	services *service.ClientServices
	clock    clock.Clock

	logger *logger.Logger
}

// NewApp opens the local store and builds the sync services for the user
// named by the configured token.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.BuildInfo, logger *logger.Logger) (*App, error) {
	if cfg.App.UserToken == "" {
		return nil, errNoUserToken
	}
	userID, err := utils.ParseUserIDFromJWT(cfg.App.UserToken)
	if err != nil {
		return nil, fmt.Errorf("read user id from token: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("create remote store adapter: %w", err)
	}

	probe, err := adapter.NewConnectivityProbe(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create connectivity probe: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		closeProbe(probe)
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	clk := clock.New()
	services := service.NewClientServices(storages, remote, probe, userID, cfg.Workers, clk, logger)

	logger.Info().Str("user_id", userID).Bool("headless", cfg.App.Headless).Msg("client app created")

	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		storages:  storages,
		probe:     probe,
		services:  services,
		clock:     clk,
		logger:    logger,
	}, nil
}

// Services exposes the sync services to embedding code.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run starts the workers and, unless headless, the sync console. Quitting
// the console stops the workers; a failing worker closes the console.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.App.Headless {
		return workers.NewWorkers(a.services, a.cfg.Workers, a.clock, nil, a.logger).Run(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)

	console := tui.New(ctx, a.services, a.buildInfo, a.logger)
	background := workers.NewWorkers(a.services, a.cfg.Workers, a.clock, console.SetPendingCount, a.logger)

	g.Go(func() error {
		return background.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return console.Run()
	})

	return g.Wait()
}

func (a *App) close() {
	closeProbe(a.probe)
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("failed to close local storage")
	}
}

// closeProbe releases the gRPC connection of a gRPC probe.
func closeProbe(probe adapter.ConnectivityProbe) {
	if c, ok := probe.(io.Closer); ok {
		_ = c.Close()
	}
}
