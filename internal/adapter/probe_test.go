package adapter

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
)

func TestHTTPProbe(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	p, err := NewConnectivityProbe(config.ClientAdapter{HTTPAddress: srv.URL}, logger.Nop())
	require.NoError(t, err)

	assert.True(t, p.IsOnline(context.Background()))

	status.Store(http.StatusServiceUnavailable)
	assert.False(t, p.IsOnline(context.Background()))

	srv.Close()
	assert.False(t, p.IsOnline(context.Background()))
}

func TestHTTPProbe_InvalidAddress(t *testing.T) {
	_, err := NewHTTPProbe("", logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestGRPCProbe(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	p, err := NewConnectivityProbe(config.ClientAdapter{GRPCAddress: lis.Addr().String()}, logger.Nop())
	require.NoError(t, err)
	defer p.(*grpcProbe).Close()

	assert.True(t, p.IsOnline(context.Background()))

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	assert.False(t, p.IsOnline(context.Background()))
}
