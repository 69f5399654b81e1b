package signer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	"github.com/nbd-wtf/go-nostr/nip19"

	"github.com/dmitrijs2005/satchel/internal/common"
)

// LocalSigner signs deterministically in process with an embedded secret key.
type LocalSigner struct {
	sk string
	pk string
}

// NewLocalSigner accepts a secret key either as 64 hex chars or in nsec
// bech32 form.
func NewLocalSigner(key string) (*LocalSigner, error) {
	sk := key
	if strings.HasPrefix(key, "nsec") {
		prefix, value, err := nip19.Decode(key)
		if err != nil || prefix != "nsec" {
			return nil, fmt.Errorf("%w: not a valid nsec key", common.ErrorValidation)
		}
		sk = value.(string)
	}

	pk, err := nostr.GetPublicKey(sk)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid secret key", common.ErrorValidation)
	}

	return &LocalSigner{sk: sk, pk: pk}, nil
}

func (s *LocalSigner) PublicKey(ctx context.Context) (string, error) {
	return s.pk, nil
}

func (s *LocalSigner) SignEvent(ctx context.Context, ev *nostr.Event) error {
	return ev.Sign(s.sk)
}

func (s *LocalSigner) Encrypt(ctx context.Context, plaintext string, recipientPubkey string) (string, error) {
	shared, err := nip04.ComputeSharedSecret(recipientPubkey, s.sk)
	if err != nil {
		return "", fmt.Errorf("compute shared secret: %w", err)
	}
	return nip04.Encrypt(plaintext, shared)
}

func (s *LocalSigner) Decrypt(ctx context.Context, ciphertext string, senderPubkey string) (string, error) {
	shared, err := nip04.ComputeSharedSecret(senderPubkey, s.sk)
	if err != nil {
		return "", fmt.Errorf("compute shared secret: %w", err)
	}
	return nip04.Decrypt(ciphertext, shared)
}
