package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/satchel/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   comma-separated relay URLs
//	-b string   comma-separated blob server URLs
//	-k string   NIP-46 bunker URL
//	-d string   path to the local sqlite database
//	-t int      per-relay publish timeout in seconds
//	-q int      per-relay query timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-b", "-k", "-d", "-t", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	relays := fs.String("r", "", "comma-separated relay URLs")
	blobServers := fs.String("b", "", "comma-separated blob server URLs")
	fs.StringVar(&cfg.BunkerURL, "k", cfg.BunkerURL, "NIP-46 bunker URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database")
	publishTimeout := fs.Int("t", int(cfg.PublishTimeout.Seconds()), "per-relay publish timeout (in seconds)")
	queryTimeout := fs.Int("q", int(cfg.QueryTimeout.Seconds()), "per-relay query timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *relays != "" {
		cfg.RelayURLs = splitList(*relays)
	}
	if *blobServers != "" {
		cfg.BlobServerURLs = splitList(*blobServers)
	}
	cfg.PublishTimeout = time.Duration(*publishTimeout) * time.Second
	cfg.QueryTimeout = time.Duration(*queryTimeout) * time.Second
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
