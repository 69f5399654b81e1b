// Package signer abstracts over "something that can produce a valid
// signature for this author". Key material may live in process (LocalSigner)
// or behind a remote capability the user controls (BunkerSigner); callers
// never see the difference.
package signer

import (
	"context"

	"github.com/nbd-wtf/go-nostr"
)

// Signer is the capability contract consumed by the rest of the client.
//
// SignEvent may suspend for a long time: a remote signer can sit on a
// user-approval prompt indefinitely, so every call takes a context and
// callers are expected to bound it (the Gateway applies a timeout).
type Signer interface {
	// PublicKey returns the author pubkey this capability signs for.
	PublicKey(ctx context.Context) (string, error)

	// SignEvent fills in the event's id and signature in place.
	SignEvent(ctx context.Context, ev *nostr.Event) error

	// Encrypt encrypts plaintext to the recipient pubkey (NIP-04).
	Encrypt(ctx context.Context, plaintext string, recipientPubkey string) (string, error)

	// Decrypt decrypts ciphertext produced for us by the sender pubkey.
	Decrypt(ctx context.Context, ciphertext string, senderPubkey string) (string, error)
}
