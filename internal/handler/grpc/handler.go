// Package grpc exposes the document server's health over the standard gRPC
// health checking protocol.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

// Handler answers grpc.health.v1.Health/Check by pinging the database.
// Watch and List are left unimplemented.
type Handler struct {
	healthpb.UnimplementedHealthServer

	services *service.Services
	logger   *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the handler to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h)
}

// Check reports SERVING while the database answers pings. The service name in
// the request is ignored because the server has a single dependency.
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.HealthService.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Str("service", req.GetService()).Msg("health check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	return &healthpb.HealthCheckResponse{Status: status}, nil
}

// UnaryLogger attaches the handler's logger to the request context and logs
// every unary call.
func (h *Handler) UnaryLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	ctx = h.logger.WithContext(ctx)

	resp, err := next(ctx, req)

	event := h.logger.Debug()
	if err != nil {
		event = h.logger.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).Msg("gRPC call")

	return resp, err
}
