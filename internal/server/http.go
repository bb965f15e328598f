package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/gig-sync/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may finish after a stop.
const shutdownTimeout = 10 * time.Second

type httpServer struct {
	server   *http.Server
	listener net.Listener
	logger   *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, requestTimeout time.Duration, logger *logger.Logger) *httpServer {
	if requestTimeout > 0 {
		handler = http.TimeoutHandler(handler, requestTimeout, `{"error":"request timed out"}`)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// listen binds the address. RunServer calls it when no listener was set.
func (h *httpServer) listen() error {
	if h.listener != nil {
		return nil
	}

	lis, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("http listen on %s: %w", h.server.Addr, err)
	}
	h.listener = lis
	return nil
}

func (h *httpServer) RunServer(ctx context.Context) error {
	if err := h.listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info().Str("address", h.listener.Addr().String()).Msg("launching HTTP server")
		errCh <- h.server.Serve(h.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.logger.Info().Msg("HTTP server shutdown")
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
