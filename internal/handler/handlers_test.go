package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ServerConfig
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both transports", cfg: config.ServerConfig{HTTPAddress: ":8080", GRPCAddress: ":9090"}, wantHTTP: true, wantGRPC: true},
		{name: "http only", cfg: config.ServerConfig{HTTPAddress: ":8080", HashKey: "k"}, wantHTTP: true},
		{name: "grpc only", cfg: config.ServerConfig{GRPCAddress: ":9090"}, wantGRPC: true},
		{name: "no addresses", cfg: config.ServerConfig{}, wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, &tt.cfg, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := &config.ServerConfig{HTTPAddress: ":8080", GRPCAddress: ":9090"}

	h1, err1 := NewHandlers(&service.Services{}, cfg, logger.Nop())
	h2, err2 := NewHandlers(&service.Services{}, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
