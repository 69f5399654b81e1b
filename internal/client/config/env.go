package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment-variable parsing. All variables are
// prefixed SATCHEL_, list values are comma-separated.
type envConfig struct {
	RelayURLs      []string      `env:"RELAY_URLS" envSeparator:","`
	BlobServerURLs []string      `env:"BLOB_SERVER_URLS" envSeparator:","`
	BunkerURL      string        `env:"BUNKER_URL"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	PublishTimeout time.Duration `env:"PUBLISH_TIMEOUT"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT"`
	SignerTimeout  time.Duration `env:"SIGNER_TIMEOUT"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES"`
}

// parseEnv overlays Config with values from SATCHEL_* environment variables.
// Unset variables leave the current values intact.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "SATCHEL_"}); err != nil {
		panic(err)
	}

	if len(ec.RelayURLs) > 0 {
		cfg.RelayURLs = ec.RelayURLs
	}
	if len(ec.BlobServerURLs) > 0 {
		cfg.BlobServerURLs = ec.BlobServerURLs
	}
	if ec.BunkerURL != "" {
		cfg.BunkerURL = ec.BunkerURL
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.PublishTimeout > 0 {
		cfg.PublishTimeout = ec.PublishTimeout
	}
	if ec.QueryTimeout > 0 {
		cfg.QueryTimeout = ec.QueryTimeout
	}
	if ec.SignerTimeout > 0 {
		cfg.SignerTimeout = ec.SignerTimeout
	}
	if ec.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = ec.MaxUploadBytes
	}
}
