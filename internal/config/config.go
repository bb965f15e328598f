// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the document server. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds identity and token settings.
	App App `envPrefix:"APP_"`

	// Storage holds the database settings. The client points DSN at its
	// SQLite file, the server at PostgreSQL.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses of the document server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the document server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds synchronization schedule and batch settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds identity and presentation settings.
type App struct {
	// UserToken is the bearer token issued by the identity provider. The
	// client derives its user id from the token subject.
	// Env: APP_USER_TOKEN
	UserToken string `env:"USER_TOKEN"`

	// TokenSignKey verifies bearer tokens on the server (HS256).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer, when set, must match the "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// HashKey, when set, signs request bodies with HMAC-SHA256. The client and
	// the server must share it.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogFile is the client log file path.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// Headless runs the client workers without the sync console.
	// Env: APP_HEADLESS
	Headless bool `env:"HEADLESS"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the SQLite file path (client) or PostgreSQL connection string
	// (server).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the document server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress serves the gRPC health service.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client-side view of the document server.
type Adapter struct {
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress, when set, is probed with the gRPC health protocol instead
	// of the HTTP ping route.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds every remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds synchronization worker settings.
type Workers struct {
	// SyncInterval is the auto-sync tick period.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PullInterval is the minimum gap between pulls run from auto-sync ticks.
	// Env: WORKERS_PULL_INTERVAL
	PullInterval time.Duration `env:"PULL_INTERVAL"`

	// BatchSize caps the number of queue entries claimed per pass.
	// Env: WORKERS_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// PassTimeout bounds a whole sync pass.
	// Env: WORKERS_PASS_TIMEOUT
	PassTimeout time.Duration `env:"PASS_TIMEOUT"`

	// PullLimit is the default page size of a pull.
	// Env: WORKERS_PULL_LIMIT
	PullLimit int `env:"PULL_LIMIT"`

	// MaxPullPages caps the pages fetched by a single pull.
	// Env: WORKERS_MAX_PULL_PAGES
	MaxPullPages int `env:"MAX_PULL_PAGES"`

	// BackoffBase and BackoffMax shape the retry delay of failed entries.
	// Env: WORKERS_BACKOFF_BASE, WORKERS_BACKOFF_MAX
	BackoffBase time.Duration `env:"BACKOFF_BASE"`
	BackoffMax  time.Duration `env:"BACKOFF_MAX"`

	// RetentionPeriod is how long Completed entries are kept for audit.
	// Env: WORKERS_RETENTION_PERIOD
	RetentionPeriod time.Duration `env:"RETENTION_PERIOD"`

	// PurgeInterval is the period of the retention purge worker.
	// Env: WORKERS_PURGE_INTERVAL
	PurgeInterval time.Duration `env:"PURGE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withEnv().
		withFlags().
		withJSON().
		build()
}
