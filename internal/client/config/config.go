package config

import "time"

// Config holds runtime settings for the satchel client.
//
// Fields:
//   - RelayURLs: relay endpoints events are published to and fetched from.
//   - BlobServerURLs: blob servers tried in order for media uploads.
//   - BunkerURL: optional NIP-46 remote-signer URL; empty means local key.
//   - DatabasePath: sqlite file holding the local cart aggregate.
//   - PublishTimeout / QueryTimeout: per-relay bounds; a slow relay never
//     delays outcomes from its siblings.
//   - SignerTimeout: upper bound on waiting for the signer capability
//     (a remote signer may sit on a user-approval prompt).
//   - MaxUploadBytes: uploads larger than this are rejected before any
//     network call.
type Config struct {
	RelayURLs      []string
	BlobServerURLs []string
	BunkerURL      string
	DatabasePath   string
	PublishTimeout time.Duration
	QueryTimeout   time.Duration
	SignerTimeout  time.Duration
	MaxUploadBytes int64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RelayURLs = []string{"wss://relay.damus.io", "wss://nos.lol", "wss://relay.nostr.band"}
	c.BlobServerURLs = []string{"https://blossom.primal.net"}
	c.BunkerURL = ""
	c.DatabasePath = "satchel.db"
	c.PublishTimeout = 10 * time.Second
	c.QueryTimeout = 7 * time.Second
	c.SignerTimeout = 60 * time.Second
	c.MaxUploadBytes = 10 << 20
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
