package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON keys and
// human-readable durations.
type StructuredJSONConfig struct {
	App struct {
		UserToken    string `json:"user_token"`
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		HashKey      string `json:"hash_key"`
		LogFile      string `json:"log_file"`
		Headless     bool   `json:"headless"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval"`
		PullInterval    Duration `json:"pull_interval"`
		BatchSize       int      `json:"batch_size"`
		PassTimeout     Duration `json:"pass_timeout"`
		PullLimit       int      `json:"pull_limit"`
		MaxPullPages    int      `json:"max_pull_pages"`
		BackoffBase     Duration `json:"backoff_base"`
		BackoffMax      Duration `json:"backoff_max"`
		RetentionPeriod Duration `json:"retention_period"`
		PurgeInterval   Duration `json:"purge_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	w := jsonCfg.Workers
	cfg := &StructuredConfig{
		App: App{
			UserToken:    jsonCfg.App.UserToken,
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			HashKey:      jsonCfg.App.HashKey,
			LogFile:      jsonCfg.App.LogFile,
			Headless:     jsonCfg.App.Headless,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			GRPCAddress:    jsonCfg.Adapter.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:    time.Duration(w.SyncInterval),
			PullInterval:    time.Duration(w.PullInterval),
			BatchSize:       w.BatchSize,
			PassTimeout:     time.Duration(w.PassTimeout),
			PullLimit:       w.PullLimit,
			MaxPullPages:    w.MaxPullPages,
			BackoffBase:     time.Duration(w.BackoffBase),
			BackoffMax:      time.Duration(w.BackoffMax),
			RetentionPeriod: time.Duration(w.RetentionPeriod),
			PurgeInterval:   time.Duration(w.PurgeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
