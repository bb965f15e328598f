package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/handler"
	"github.com/MKhiriev/gig-sync/internal/logger"
)

type server struct {
	servers []Server
	logger  *logger.Logger
}

// NewServer builds a transport for every handler that was created.
func NewServer(handlers *handler.Handlers, cfg *config.ServerConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{logger: logger}

	if handlers.HTTP != nil && cfg.HTTPAddress != "" {
		s.servers = append(s.servers, newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, cfg.RequestTimeout, logger))
	}
	if handlers.GRPC != nil && cfg.GRPCAddress != "" {
		s.servers = append(s.servers, newGRPCServer(handlers.GRPC, cfg.GRPCAddress, logger))
	}

	if len(s.servers) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

// RunServer runs all transports until ctx is cancelled. When one transport
// fails the others are stopped and its error is returned.
func (s *server) RunServer(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range s.servers {
		g.Go(func() error {
			return srv.RunServer(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
