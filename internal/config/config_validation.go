// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks invariants that hold for both the client and the server
// view of the merged configuration.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.BatchSize < 0 || cfg.Workers.PullLimit < 0 || cfg.Workers.MaxPullPages < 0 {
		return fmt.Errorf("%w: negative batch size or pull limit", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.BatchSize <= 0 || cfg.Workers.PullLimit <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Workers.BackoffBase > cfg.Workers.BackoffMax {
		return fmt.Errorf("%w: backoff base exceeds backoff max", ErrInvalidWorkerConfigs)
	}

	if cfg.App.UserToken == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
