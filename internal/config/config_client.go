package config

import (
	"fmt"
	"time"
)

// Client defaults applied to zero-valued fields.
const (
	DefaultSyncInterval    = 30 * time.Second
	DefaultPullInterval    = 5 * time.Minute
	DefaultBatchSize       = 20
	DefaultPassTimeout     = 2 * time.Minute
	DefaultPullLimit       = 100
	DefaultMaxPullPages    = 10
	DefaultRequestTimeout  = 15 * time.Second
	DefaultBackoffBase     = time.Second
	DefaultBackoffMax      = 5 * time.Minute
	DefaultRetentionPeriod = 7 * 24 * time.Hour
	DefaultPurgeInterval   = time.Hour
	DefaultClientDSN       = "gig-sync.db"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// UserToken is the bearer token sent with every remote call. The user id
	// used for ownership filters is its subject.
	UserToken string
	// HashKey signs request bodies when set.
	HashKey  string
	LogFile  string
	Headless bool
	Version  string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the document server.
	HTTPAddress string
	// GRPCAddress is the optional gRPC health endpoint of the document server.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background worker and sync settings.
type ClientWorkers struct {
	SyncInterval    time.Duration
	PullInterval    time.Duration
	BatchSize       int
	PassTimeout     time.Duration
	PullLimit       int
	MaxPullPages    int
	BackoffBase     time.Duration
	BackoffMax      time.Duration
	RetentionPeriod time.Duration
	PurgeInterval   time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps the client fields of cfg, fills defaults for zero
// values, and validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			UserToken: cfg.App.UserToken,
			HashKey:   cfg.App.HashKey,
			LogFile:   cfg.App.LogFile,
			Headless:  cfg.App.Headless,
			Version:   cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: orDuration(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: orString(cfg.Storage.DB.DSN, DefaultClientDSN),
			},
		},
		Workers: ClientWorkers{
			SyncInterval:    orDuration(cfg.Workers.SyncInterval, DefaultSyncInterval),
			PullInterval:    orDuration(cfg.Workers.PullInterval, DefaultPullInterval),
			BatchSize:       orInt(cfg.Workers.BatchSize, DefaultBatchSize),
			PassTimeout:     orDuration(cfg.Workers.PassTimeout, DefaultPassTimeout),
			PullLimit:       orInt(cfg.Workers.PullLimit, DefaultPullLimit),
			MaxPullPages:    orInt(cfg.Workers.MaxPullPages, DefaultMaxPullPages),
			BackoffBase:     orDuration(cfg.Workers.BackoffBase, DefaultBackoffBase),
			BackoffMax:      orDuration(cfg.Workers.BackoffMax, DefaultBackoffMax),
			RetentionPeriod: orDuration(cfg.Workers.RetentionPeriod, DefaultRetentionPeriod),
			PurgeInterval:   orDuration(cfg.Workers.PurgeInterval, DefaultPurgeInterval),
		},
	}

	return clientCfg, clientCfg.validate()
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
