package signer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip46"

	"github.com/dmitrijs2005/satchel/internal/common"
)

// BunkerSigner signs with a NIP-46 remote signer. The secret key never
// leaves the bunker: we forward the canonical payload over relays and get the
// signature back. Every request may stall on an out-of-process approval
// prompt, so calls are only bounded by the caller's context.
type BunkerSigner struct {
	bunker *nip46.BunkerClient
}

// NewBunkerSigner connects to a bunker URL (bunker://... or a NIP-05
// identifier). A fresh ephemeral client key is generated per connection; it
// only authenticates this client to the bunker and signs nothing else.
func NewBunkerSigner(ctx context.Context, bunkerURL string) (*BunkerSigner, error) {
	clientKey := nostr.GeneratePrivateKey()
	pool := nostr.NewSimplePool(ctx)

	bunker, err := nip46.ConnectBunker(ctx, clientKey, bunkerURL, pool, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: connect bunker: %v", common.ErrorSignerUnavailable, err)
	}

	return &BunkerSigner{bunker: bunker}, nil
}

func (s *BunkerSigner) PublicKey(ctx context.Context) (string, error) {
	pk, err := s.bunker.GetPublicKey(ctx)
	if err != nil {
		return "", mapBunkerError(err)
	}
	return pk, nil
}

func (s *BunkerSigner) SignEvent(ctx context.Context, ev *nostr.Event) error {
	if err := s.bunker.SignEvent(ctx, ev); err != nil {
		return mapBunkerError(err)
	}
	return nil
}

func (s *BunkerSigner) Encrypt(ctx context.Context, plaintext string, recipientPubkey string) (string, error) {
	out, err := s.bunker.NIP04Encrypt(ctx, recipientPubkey, plaintext)
	if err != nil {
		return "", mapBunkerError(err)
	}
	return out, nil
}

func (s *BunkerSigner) Decrypt(ctx context.Context, ciphertext string, senderPubkey string) (string, error) {
	out, err := s.bunker.NIP04Decrypt(ctx, senderPubkey, ciphertext)
	if err != nil {
		return "", mapBunkerError(err)
	}
	return out, nil
}

// mapBunkerError classifies the bunker's free-form error strings into the
// sentinels the rest of the client dispatches on. NIP-46 does not define
// machine-readable codes, so rejection is matched on wording.
func mapBunkerError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "reject") || strings.Contains(msg, "denied") {
		return fmt.Errorf("%w: %v", common.ErrorUserRejected, err)
	}
	return fmt.Errorf("%w: %v", common.ErrorSignerUnavailable, err)
}
