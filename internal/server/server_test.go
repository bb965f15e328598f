package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/handler"
	myGRPC "github.com/MKhiriev/gig-sync/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/gig-sync/internal/handler/http"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

func TestNewServer(t *testing.T) {
	services := &service.Services{}
	httpHandler := myHTTP.NewHandler(services, "", logger.Nop())
	grpcHandler := myGRPC.NewHandler(services, logger.Nop())

	tests := []struct {
		name      string
		handlers  *handler.Handlers
		cfg       *config.ServerConfig
		wantCount int
		wantErr   error
	}{
		{
			name:      "both transports",
			handlers:  &handler.Handlers{HTTP: httpHandler, GRPC: grpcHandler},
			cfg:       &config.ServerConfig{HTTPAddress: ":0", GRPCAddress: ":0"},
			wantCount: 2,
		},
		{
			name:      "http only",
			handlers:  &handler.Handlers{HTTP: httpHandler},
			cfg:       &config.ServerConfig{HTTPAddress: ":0"},
			wantCount: 1,
		},
		{
			name:     "nothing configured",
			handlers: &handler.Handlers{},
			cfg:      &config.ServerConfig{},
			wantErr:  errNoServersAreCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(tt.handlers, tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, srv.(*server).servers, tt.wantCount)
		})
	}
}

func TestHTTPServer_ServesUntilCancelled(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/hello", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hi"))
	})

	srv := newHTTPServer(mux, lis.Addr().String(), time.Second, logger.Nop())
	srv.listener = lis

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/hello")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "hi", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("http server did not stop")
	}
}

type failingServer struct{ err error }

func (f failingServer) RunServer(context.Context) error { return f.err }

type blockingServer struct{ stopped chan struct{} }

func (b blockingServer) RunServer(ctx context.Context) error {
	<-ctx.Done()
	close(b.stopped)
	return nil
}

func TestServer_FailureStopsOthers(t *testing.T) {
	wantErr := errors.New("bind failed")
	blocking := blockingServer{stopped: make(chan struct{})}
	s := &server{
		servers: []Server{blocking, failingServer{err: wantErr}},
		logger:  logger.Nop(),
	}

	err := s.RunServer(context.Background())

	require.ErrorIs(t, err, wantErr)
	select {
	case <-blocking.stopped:
	default:
		t.Fatal("blocking server was not stopped")
	}
}
