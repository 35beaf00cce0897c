package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// names and string durations.
type StructuredJSONConfig struct {
	App struct {
		LogLevel                string   `json:"log_level"`
		Version                 string   `json:"version"`
		APITokenSignKey         string   `json:"api_token_sign_key"`
		APITokenIssuer          string   `json:"api_token_issuer"`
		APITokenDuration        Duration `json:"api_token_duration"`
		CredentialEncryptionKey string   `json:"credential_encryption_key"`
		FallbackAccount         string   `json:"fallback_account"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL           string   `json:"base_url"`
		RequestTimeout    Duration `json:"request_timeout"`
		MaxRetries        int      `json:"max_retries"`
		RetryBaseDelay    Duration `json:"retry_base_delay"`
		RetryMaxDelay     Duration `json:"retry_max_delay"`
		RateLimitMaxWait  Duration `json:"rate_limit_max_wait"`
		RequestsPerSecond float64  `json:"requests_per_second"`
		Burst             int      `json:"burst"`
		MaxConcurrency    int64    `json:"max_concurrency"`
		PageSize          int      `json:"page_size"`
		Fields            []string `json:"fields"`
	} `json:"adapter,omitempty"`

	Auth struct {
		TokenURL     string   `json:"token_url"`
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		Account      string   `json:"account"`
		SafetyMargin Duration `json:"safety_margin"`
	} `json:"auth,omitempty"`

	Sync struct {
		Epoch            string   `json:"epoch"`
		ConflictPolicy   string   `json:"conflict_policy"`
		LocalOwnedFields []string `json:"local_owned_fields"`
	} `json:"sync,omitempty"`

	Bulk struct {
		PollInterval    Duration `json:"poll_interval"`
		MaxPollDuration Duration `json:"max_poll_duration"`
	} `json:"bulk,omitempty"`

	Workers struct {
		IncrementalSyncInterval Duration `json:"incremental_sync_interval"`
		PushInterval            Duration `json:"push_interval"`
		HealthProbeInterval     Duration `json:"health_probe_interval"`
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

	cfg := &StructuredConfig{
		App: App{
			LogLevel:                jsonCfg.App.LogLevel,
			Version:                 jsonCfg.App.Version,
			APITokenSignKey:         jsonCfg.App.APITokenSignKey,
			APITokenIssuer:          jsonCfg.App.APITokenIssuer,
			APITokenDuration:        time.Duration(jsonCfg.App.APITokenDuration),
			CredentialEncryptionKey: jsonCfg.App.CredentialEncryptionKey,
			FallbackAccount:         jsonCfg.App.FallbackAccount,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			BaseURL:           jsonCfg.Adapter.BaseURL,
			RequestTimeout:    time.Duration(jsonCfg.Adapter.RequestTimeout),
			MaxRetries:        jsonCfg.Adapter.MaxRetries,
			RetryBaseDelay:    time.Duration(jsonCfg.Adapter.RetryBaseDelay),
			RetryMaxDelay:     time.Duration(jsonCfg.Adapter.RetryMaxDelay),
			RateLimitMaxWait:  time.Duration(jsonCfg.Adapter.RateLimitMaxWait),
			RequestsPerSecond: jsonCfg.Adapter.RequestsPerSecond,
			Burst:             jsonCfg.Adapter.Burst,
			MaxConcurrency:    jsonCfg.Adapter.MaxConcurrency,
			PageSize:          jsonCfg.Adapter.PageSize,
			Fields:            jsonCfg.Adapter.Fields,
		},
		Auth: Auth{
			TokenURL:     jsonCfg.Auth.TokenURL,
			ClientID:     jsonCfg.Auth.ClientID,
			ClientSecret: jsonCfg.Auth.ClientSecret,
			Account:      jsonCfg.Auth.Account,
			SafetyMargin: time.Duration(jsonCfg.Auth.SafetyMargin),
		},
		Sync: Sync{
			Epoch:            jsonCfg.Sync.Epoch,
			ConflictPolicy:   jsonCfg.Sync.ConflictPolicy,
			LocalOwnedFields: jsonCfg.Sync.LocalOwnedFields,
		},
		Bulk: Bulk{
			PollInterval:    time.Duration(jsonCfg.Bulk.PollInterval),
			MaxPollDuration: time.Duration(jsonCfg.Bulk.MaxPollDuration),
		},
		Workers: Workers{
			IncrementalSyncInterval: time.Duration(jsonCfg.Workers.IncrementalSyncInterval),
			PushInterval:            time.Duration(jsonCfg.Workers.PushInterval),
			HealthProbeInterval:     time.Duration(jsonCfg.Workers.HealthProbeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
