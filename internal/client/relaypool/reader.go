package relaypool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

// Reader queries relays for events matching a filter and picks the most
// recent match. Like the Publisher it is stateless across calls.
type Reader struct {
	dial    Dialer
	timeout time.Duration
	log     logging.Logger
}

func NewReader(dial Dialer, timeout time.Duration, log logging.Logger) *Reader {
	return &Reader{dial: dial, timeout: timeout, log: log}
}

// FetchLatest queries every relay concurrently, de-duplicates results by
// event id, and returns the newest event: highest CreatedAt, ties broken by
// the lexicographically smallest id so the winner is stable across runs.
//
// Per-relay failures are absorbed; the best-effort result stands as long as
// at least one relay answered. ErrorNotFound means relays answered but none
// had a match; ErrorAllRelaysFailed means nothing answered at all.
func (r *Reader) FetchLatest(ctx context.Context, filter nostr.Filter, urls []string) (*nostr.Event, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no relays given", common.ErrorValidation)
	}

	var (
		mu       sync.Mutex
		byID     = make(map[string]*nostr.Event)
		answered int
	)

	g := new(errgroup.Group)
	for _, url := range urls {
		g.Go(func() error {
			evs, err := r.query(ctx, url, filter)
			if err != nil {
				r.log.Warn(ctx, "relay query failed", "relay", url, "reason", err.Error())
				return nil // absorbed, siblings continue
			}
			mu.Lock()
			answered++
			for _, ev := range evs {
				byID[ev.ID] = ev
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorCancelled, err)
	}
	if answered == 0 {
		return nil, common.ErrorAllRelaysFailed
	}
	if len(byID) == 0 {
		return nil, common.ErrorNotFound
	}

	var best *nostr.Event
	for _, ev := range byID {
		if best == nil ||
			ev.CreatedAt > best.CreatedAt ||
			(ev.CreatedAt == best.CreatedAt && ev.ID < best.ID) {
			best = ev
		}
	}
	return best, nil
}

func (r *Reader) query(ctx context.Context, url string, filter nostr.Filter) ([]*nostr.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	return conn.Query(ctx, filter)
}
