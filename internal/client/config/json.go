package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/satchel/internal/flagx"
	"github.com/dmitrijs2005/satchel/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, set values are copied into the
// runtime Config.
type JsonConfig struct {
	RelayURLs      []string       `json:"relay_urls"`
	BlobServerURLs []string       `json:"blob_server_urls"`
	BunkerURL      string         `json:"bunker_url"`
	DatabasePath   string         `json:"database_path"`
	PublishTimeout timex.Duration `json:"publish_timeout"`
	QueryTimeout   timex.Duration `json:"query_timeout"`
	SignerTimeout  timex.Duration `json:"signer_timeout"`
	MaxUploadBytes int64          `json:"max_upload_bytes"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags (flagx.JsonConfigFlags); when no path
// is given, nothing is loaded. Only fields present in the file override the
// current values. Panics on read or unmarshal errors, matching the fail-fast
// startup behavior of the rest of the config chain.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if len(jc.RelayURLs) > 0 {
		cfg.RelayURLs = jc.RelayURLs
	}
	if len(jc.BlobServerURLs) > 0 {
		cfg.BlobServerURLs = jc.BlobServerURLs
	}
	if jc.BunkerURL != "" {
		cfg.BunkerURL = jc.BunkerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.PublishTimeout.Duration > 0 {
		cfg.PublishTimeout = jc.PublishTimeout.Duration
	}
	if jc.QueryTimeout.Duration > 0 {
		cfg.QueryTimeout = jc.QueryTimeout.Duration
	}
	if jc.SignerTimeout.Duration > 0 {
		cfg.SignerTimeout = jc.SignerTimeout.Duration
	}
	if jc.MaxUploadBytes > 0 {
		cfg.MaxUploadBytes = jc.MaxUploadBytes
	}
}
