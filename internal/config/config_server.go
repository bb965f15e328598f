package config

import (
	"fmt"
	"time"
)

// ServerConfig is the document server view of [StructuredConfig].
type ServerConfig struct {
	DSN            string
	HTTPAddress    string
	GRPCAddress    string
	RequestTimeout time.Duration
	TokenSignKey   string
	TokenIssuer    string
	HashKey        string
}

// GetServerConfig loads the merged configuration and maps the document server
// fields.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewServerConfig(cfg)
}

// NewServerConfig maps and validates the server fields of cfg.
func NewServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		DSN:            cfg.Storage.DB.DSN,
		HTTPAddress:    orString(cfg.Server.HTTPAddress, ":8080"),
		GRPCAddress:    cfg.Server.GRPCAddress,
		RequestTimeout: orDuration(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		TokenSignKey:   cfg.App.TokenSignKey,
		TokenIssuer:    cfg.App.TokenIssuer,
		HashKey:        cfg.App.HashKey,
	}

	return serverCfg, serverCfg.validate()
}
