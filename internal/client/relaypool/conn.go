// Package relaypool fans events out to a set of independently operated
// relays and reads them back. No relay is trusted to be available or
// complete: every attempt gets its own connection and its own timeout, and
// per-relay failures are absorbed into outcome accounting instead of
// aborting sibling attempts.
package relaypool

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Conn is the per-relay transport surface the pool needs. The production
// implementation wraps a live relay websocket; tests substitute fakes.
type Conn interface {
	Publish(ctx context.Context, ev nostr.Event) error
	Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error)
	Close() error
}

// Dialer opens a connection to a single relay URL.
type Dialer func(ctx context.Context, url string) (Conn, error)

// DialRelay is the production Dialer.
func DialRelay(ctx context.Context, url string) (Conn, error) {
	r, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return nil, err
	}
	return &relayConn{r: r}, nil
}

type relayConn struct {
	r *nostr.Relay
}

func (c *relayConn) Publish(ctx context.Context, ev nostr.Event) error {
	return c.r.Publish(ctx, ev)
}

func (c *relayConn) Query(ctx context.Context, filter nostr.Filter) ([]*nostr.Event, error) {
	return c.r.QuerySync(ctx, filter)
}

func (c *relayConn) Close() error {
	return c.r.Close()
}
