package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/gig-sync/internal/handler/grpc"
	"github.com/MKhiriev/gig-sync/internal/logger"
)

type grpcServer struct {
	address  string
	server   *grpc.Server
	listener net.Listener
	logger   *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, address string, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(handler.UnaryLogger))
	handler.Register(s)

	return &grpcServer{
		address: address,
		server:  s,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	if g.listener != nil {
		return nil
	}

	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", g.address, err)
	}
	g.listener = lis
	return nil
}

func (g *grpcServer) RunServer(ctx context.Context) error {
	if err := g.listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info().Str("address", g.listener.Addr().String()).Msg("launching gRPC server")
		errCh <- g.server.Serve(g.listener)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	g.logger.Info().Msg("gRPC server shutdown")
	g.server.GracefulStop()
	return nil
}
