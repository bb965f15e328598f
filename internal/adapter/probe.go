package adapter

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

const probeTimeout = 3 * time.Second

// NewConnectivityProbe returns a gRPC health probe when the adapter has a gRPC
// address and an HTTP ping probe otherwise.
func NewConnectivityProbe(adapterCfg config.ClientAdapter, logger *logger.Logger) (ConnectivityProbe, error) {
	if adapterCfg.GRPCAddress != "" {
		return NewGRPCProbe(adapterCfg.GRPCAddress, logger)
	}
	return NewHTTPProbe(adapterCfg.HTTPAddress, logger)
}

type httpProbe struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPProbe probes GET /api/ping. The ping route is public, so the probe
// carries no token.
func NewHTTPProbe(address string, logger *logger.Logger) (ConnectivityProbe, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid probe address: %w", err)
	}

	return &httpProbe{
		client: utils.NewHTTPClient(baseURL, "", probeTimeout),
		logger: logger,
	}, nil
}

func (p *httpProbe) IsOnline(ctx context.Context) bool {
	resp, err := p.client.R().SetContext(ctx).Get(pingPath)
	if err != nil {
		p.logger.Debug().Err(err).Str("func", "httpProbe.IsOnline").Msg("server unreachable")
		return false
	}
	return resp.IsSuccess()
}

type grpcProbe struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
	logger *logger.Logger
}

// NewGRPCProbe dials address lazily and asks the standard health service for
// the overall serving status.
func NewGRPCProbe(address string, logger *logger.Logger) (ConnectivityProbe, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create grpc client: %w", err)
	}

	return &grpcProbe{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
		logger: logger,
	}, nil
}

func (p *grpcProbe) IsOnline(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := p.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		p.logger.Debug().Err(err).Str("func", "grpcProbe.IsOnline").Msg("health check failed")
		return false
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

// Close releases the underlying connection.
func (p *grpcProbe) Close() error {
	return p.conn.Close()
}
