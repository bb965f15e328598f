package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

func newTestConfig(t *testing.T, token string) *config.ClientConfig {
	t.Helper()
	return &config.ClientConfig{
		App: config.ClientApp{UserToken: token, Headless: true},
		Adapter: config.ClientAdapter{
			HTTPAddress:    "http://127.0.0.1:1",
			RequestTimeout: time.Second,
		},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")}},
		Workers: config.ClientWorkers{
			SyncInterval:    time.Hour,
			BatchSize:       config.DefaultBatchSize,
			PassTimeout:     time.Second,
			PullLimit:       config.DefaultPullLimit,
			MaxPullPages:    config.DefaultMaxPullPages,
			BackoffBase:     time.Second,
			BackoffMax:      time.Minute,
			RetentionPeriod: time.Hour,
			PurgeInterval:   time.Hour,
		},
	}
}

func newTestToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("gig-sync", userID, time.Hour, "secret")
	require.NoError(t, err)
	return token
}

func TestNewApp_RequiresToken(t *testing.T) {
	_, err := NewApp(context.Background(), newTestConfig(t, ""), models.BuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, errNoUserToken)
}

func TestNewApp_RejectsMalformedToken(t *testing.T) {
	_, err := NewApp(context.Background(), newTestConfig(t, "not-a-jwt"), models.BuildInfo{}, logger.Nop())
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestApp_HeadlessRunStopsOnCancel(t *testing.T) {
	cfg := newTestConfig(t, newTestToken(t, "u1"))

	app, err := NewApp(context.Background(), cfg, models.NewBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, app.Services())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return app.Services().SyncCoordinator.Status().IsAutoSyncRunning
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.False(t, app.Services().SyncCoordinator.Status().IsAutoSyncRunning)
}
