package relaypool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

// Publisher fans a signed event out to N relays concurrently. It holds no
// state across calls; any number of publishes may run at once.
type Publisher struct {
	dial    Dialer
	timeout time.Duration
	log     logging.Logger
}

// NewPublisher returns a Publisher with a per-relay attempt timeout.
func NewPublisher(dial Dialer, timeout time.Duration, log logging.Logger) *Publisher {
	return &Publisher{dial: dial, timeout: timeout, log: log}
}

// Publish sends ev to every relay in urls. Attempts run concurrently, each
// bounded by its own timeout, so a slow relay never delays outcomes from the
// others. After each attempt settles the optional onProgress callback is
// invoked from a single collector goroutine with a non-decreasing completed
// count.
//
// The call waits for all attempts to settle, then partitions relays into
// published/failed. On context cancellation in-flight attempts are abandoned
// without waiting for them to drain and ErrorCancelled is returned.
func (p *Publisher) Publish(ctx context.Context, ev *nostr.Event, urls []string, onProgress Progress) (*PublishResult, error) {
	if ev == nil || ev.Sig == "" {
		return nil, fmt.Errorf("%w: refusing to publish an unsigned event", common.ErrorValidation)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no relays given", common.ErrorValidation)
	}

	log := p.log.With("op", uuid.NewString(), "event", ev.ID)
	log.Info(ctx, "publishing event", "relays", len(urls))

	// Buffered so abandoned attempts can always deliver and exit.
	outcomes := make(chan Outcome, len(urls))
	for _, url := range urls {
		go func() {
			outcomes <- p.attempt(ctx, url, ev)
		}()
	}

	result := &PublishResult{EventID: ev.ID}
	for completed := 0; completed < len(urls); {
		select {
		case <-ctx.Done():
			log.Warn(ctx, "publish cancelled", "settled", completed, "total", len(urls))
			return nil, fmt.Errorf("%w: %v", common.ErrorCancelled, ctx.Err())
		case o := <-outcomes:
			completed++
			if o.Accepted {
				result.Published = append(result.Published, o.RelayURL)
				log.Debug(ctx, "relay accepted", "relay", o.RelayURL, "latency", o.Latency)
			} else {
				result.Failed = append(result.Failed, o.RelayURL)
				log.Warn(ctx, "relay attempt failed", "relay", o.RelayURL, "reason", o.Message)
			}
			if onProgress != nil {
				onProgress(completed, len(urls), o.statusLine())
			}
		}
	}

	result.SuccessRate = float64(len(result.Published)) / float64(len(urls))
	result.OverallSuccess = len(result.Published) > 0

	if !result.OverallSuccess {
		log.Error(ctx, "no relay accepted the event", "relays", len(urls))
	} else if len(result.Failed) > 0 {
		log.Warn(ctx, "partial publish",
			"published", len(result.Published), "failed", len(result.Failed))
	}

	return result, nil
}

func (p *Publisher) attempt(ctx context.Context, url string, ev *nostr.Event) Outcome {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, url)
	if err != nil {
		return Outcome{RelayURL: url, Message: "connect: " + err.Error(), Latency: time.Since(start)}
	}
	defer conn.Close()

	if err := conn.Publish(ctx, *ev); err != nil {
		return Outcome{RelayURL: url, Message: err.Error(), Latency: time.Since(start)}
	}

	return Outcome{RelayURL: url, Accepted: true, Latency: time.Since(start)}
}
