package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/mock"
	"github.com/MKhiriev/gig-sync/internal/service"
)

func newTestHandler(t *testing.T) (*Handler, *mock.MockHealthService) {
	t.Helper()
	health := mock.NewMockHealthService(gomock.NewController(t))
	return NewHandler(&service.Services{HealthService: health}, logger.Nop()), health
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{"database reachable", nil, healthpb.HealthCheckResponse_SERVING},
		{"database down", service.ErrDatabaseUnavailable, healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, health := newTestHandler(t)
			health.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			resp, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.GetStatus())
		})
	}
}

func TestCheck_OverGRPC(t *testing.T) {
	h, health := newTestHandler(t)
	health.EXPECT().Ping(gomock.Any()).Return(nil)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(h.UnaryLogger))
	h.Register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: "documents"})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestUnaryLogger_PassesThrough(t *testing.T) {
	h, _ := newTestHandler(t)
	wantErr := errors.New("boom")

	resp, err := h.UnaryLogger(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/x/Y"},
		func(ctx context.Context, req any) (any, error) {
			assert.NotNil(t, logger.FromContext(ctx))
			return "resp", wantErr
		})

	assert.Equal(t, "resp", resp)
	assert.ErrorIs(t, err, wantErr)
}
