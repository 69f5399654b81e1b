package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nbd-wtf/go-nostr/nip05"
	"github.com/nbd-wtf/go-nostr/nip46"

	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// validSignerTarget reports whether the input names a remote signer the way
// nip46.ConnectBunker accepts it: a bunker:// URL or a NIP-05 identifier
// such as name@example.com.
func validSignerTarget(input string) bool {
	return nip46.IsValidBunkerURL(input) || nip05.IsValidIdentifier(input)
}

// Login establishes a signer for the session.
//
// If the configuration carries a bunker:// URL or NIP-05 identifier, or the
// user enters one at the prompt, a remote-signer session is opened and every signature request will
// round-trip through it. Otherwise the user's key (nsec or hex) is read
// without echo and kept only in process memory; the raw input buffer is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	bunkerURL := a.config.BunkerURL
	if bunkerURL == "" {
		entered, err := getSimpleText(a.reader, "Enter a bunker:// URL or NIP-05 identifier, or press Enter to use a local key", os.Stdout)
		if err != nil {
			return err
		}
		bunkerURL = entered
	}

	var s signer.Signer
	if bunkerURL != "" {
		if !validSignerTarget(bunkerURL) {
			return fmt.Errorf("%w: expected a bunker:// URL or a NIP-05 identifier", common.ErrorValidation)
		}
		bs, err := signer.NewBunkerSigner(ctx, bunkerURL)
		if err != nil {
			log.Printf("Remote signer connection failed: %s", err.Error())
			return err
		}
		s = bs
	} else {
		key, err := getSecret("Enter key (nsec or hex)", os.Stdout)
		if err != nil {
			return err
		}
		ls, lerr := signer.NewLocalSigner(string(key))
		common.WipeByteArray(key)
		if lerr != nil {
			log.Printf("Login unsuccessful: %s", lerr.Error())
			return lerr
		}
		s = ls
	}

	pk, err := s.PublicKey(ctx)
	if err != nil {
		log.Printf("Could not resolve public key: %s", err.Error())
		return err
	}

	a.pubkey = pk
	a.wireServices(s)
	log.Printf("Logged in as %s", pk)
	return nil
}

// Logout drops the signer and the derived services. Local cart state stays on
// disk; it belongs to the key, not the session.
func (a *App) Logout(ctx context.Context) error {
	a.signing = nil
	a.pubkey = ""
	a.content = nil
	a.cartSvc = nil
	a.media = nil
	return nil
}
