package signer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

// Gateway drives a Signer capability and verifies its output. It holds no
// key material itself.
type Gateway struct {
	timeout time.Duration
	log     logging.Logger
}

func NewGateway(timeout time.Duration, log logging.Logger) *Gateway {
	return &Gateway{timeout: timeout, log: log}
}

// Sign asks the capability to sign ev in place, bounded by the gateway
// timeout, then verifies the returned signature against the recomputed
// canonical id. A signature that does not verify, or a signer that altered
// the record while signing, is an invariant violation: the event must not be
// published.
func (g *Gateway) Sign(ctx context.Context, ev *nostr.Event, s Signer) error {
	if s == nil {
		return common.ErrorSignerUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	want := ev.GetID()

	if err := s.SignEvent(ctx, ev); err != nil {
		switch {
		case errors.Is(err, common.ErrorUserRejected):
			return err
		case errors.Is(err, common.ErrorSignerUnavailable):
			return err
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return fmt.Errorf("%w: %v", common.ErrorSignerUnavailable, err)
		default:
			return fmt.Errorf("signing failed: %w", err)
		}
	}

	if ev.ID != want {
		g.log.Error(ctx, "signer altered the record while signing", "want", want, "got", ev.ID)
		return fmt.Errorf("%w: event id changed during signing", common.ErrorSignatureInvalid)
	}

	ok, err := ev.CheckSignature()
	if err != nil || !ok {
		g.log.Error(ctx, "returned signature does not verify", "event", ev.ID, "err", err)
		return common.ErrorSignatureInvalid
	}

	return nil
}
