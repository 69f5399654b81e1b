// Package services is the business layer the CLI talks to. Each service wraps
// the lower-level packages into one operation per user intent.
package services

import (
	"context"
	"fmt"

	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/client/event"
	"github.com/dmitrijs2005/satchel/internal/client/relaypool"
	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

type ContentService interface {
	Publish(ctx context.Context, kind int, content string, tags nostr.Tags, onProgress relaypool.Progress) (*relaypool.PublishResult, error)
	PublishNote(ctx context.Context, content string, onProgress relaypool.Progress) (*relaypool.PublishResult, error)
}

type Broadcaster interface {
	Publish(ctx context.Context, ev *nostr.Event, urls []string, onProgress relaypool.Progress) (*relaypool.PublishResult, error)
}

type contentService struct {
	signing   signer.Signer
	gateway   *signer.Gateway
	builder   *event.Builder
	caster    Broadcaster
	relayURLs []string
	log       logging.Logger
}

func NewContentService(s signer.Signer, gateway *signer.Gateway, builder *event.Builder, caster Broadcaster, relayURLs []string, log logging.Logger) ContentService {
	return &contentService{
		signing:   s,
		gateway:   gateway,
		builder:   builder,
		caster:    caster,
		relayURLs: relayURLs,
		log:       log,
	}
}

// Publish builds, signs and fans a record out to every configured relay.
// Acceptance by at least one relay counts as success; the result carries the
// per-relay breakdown either way.
func (s *contentService) Publish(ctx context.Context, kind int, content string, tags nostr.Tags, onProgress relaypool.Progress) (*relaypool.PublishResult, error) {
	if s.signing == nil {
		return nil, fmt.Errorf("cannot publish: %w", common.ErrorSignerUnavailable)
	}

	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving author: %w", err)
	}

	ev, err := s.builder.Build(kind, content, pk, tags)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.Sign(ctx, ev, s.signing); err != nil {
		return nil, fmt.Errorf("signing record: %w", err)
	}

	result, err := s.caster.Publish(ctx, ev, s.relayURLs, onProgress)
	if err != nil {
		return nil, err
	}
	if !result.OverallSuccess {
		return result, fmt.Errorf("%w: record %s", common.ErrorAllRelaysFailed, ev.ID)
	}
	if len(result.Failed) > 0 {
		s.log.Warn(ctx, "published with partial relay coverage",
			"event_id", ev.ID, "accepted", len(result.Published), "total", len(s.relayURLs))
	}
	return result, nil
}

func (s *contentService) PublishNote(ctx context.Context, content string, onProgress relaypool.Progress) (*relaypool.PublishResult, error) {
	return s.Publish(ctx, common.KindTextNote, content, nil, onProgress)
}
