package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/client/event"
	"github.com/dmitrijs2005/satchel/internal/client/models"
	"github.com/dmitrijs2005/satchel/internal/client/relaypool"
	"github.com/dmitrijs2005/satchel/internal/client/repositories/carts"
	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/dbx"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

// Fetcher is the reader surface the sync engine needs.
type Fetcher interface {
	FetchLatest(ctx context.Context, filter nostr.Filter, urls []string) (*nostr.Event, error)
}

// Broadcaster is the publisher surface the sync engine needs.
type Broadcaster interface {
	Publish(ctx context.Context, ev *nostr.Event, urls []string, onProgress relaypool.Progress) (*relaypool.PublishResult, error)
}

// Service owns the cart aggregate lifecycle: local edits, reconciliation
// against the relay network, and re-publication of the merged state. The
// published cart event is NIP-04-encrypted to the author's own pubkey so the
// cart contents are not plaintext on public relays.
type Service struct {
	signing   signer.Signer
	gateway   *signer.Gateway
	builder   *event.Builder
	fetcher   Fetcher
	caster    Broadcaster
	db        *sql.DB
	relayURLs []string
	log       logging.Logger

	// one in-flight reconciliation per aggregate key
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(
	s signer.Signer,
	gateway *signer.Gateway,
	builder *event.Builder,
	fetcher Fetcher,
	caster Broadcaster,
	db *sql.DB,
	relayURLs []string,
	log logging.Logger,
) *Service {
	return &Service{
		signing:   s,
		gateway:   gateway,
		builder:   builder,
		fetcher:   fetcher,
		caster:    caster,
		db:        db,
		relayURLs: relayURLs,
		log:       log,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *Service) getRepo() carts.Repository {
	return carts.NewSQLiteRepository(s.db)
}

func (s *Service) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// View returns the local working copy without touching the network. A cart
// that was never written is an empty snapshot, not an error.
func (s *Service) View(ctx context.Context, key string) (*models.CartSnapshot, error) {
	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.getRepo().Get(ctx, pk, common.KindCartState, key)
	if errors.Is(err, common.ErrorNotFound) {
		return &models.CartSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart: %w", err)
	}
	return snap, nil
}

// AddItem adds quantity of a product to the local working copy, or bumps the
// existing line. Price updates ride along with the add.
func (s *Service) AddItem(ctx context.Context, key string, productID string, quantity int, unitPriceSats int64) (*models.CartSnapshot, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product reference required", common.ErrorValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	if unitPriceSats < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", common.ErrorValidation)
	}

	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.localOrEmpty(ctx, pk, key)
	if err != nil {
		return nil, err
	}

	if i := snap.Find(productID); i >= 0 {
		snap.Items[i].Quantity += quantity
		snap.Items[i].UnitPriceSats = unitPriceSats
	} else {
		snap.Items = append(snap.Items, models.CartItem{
			ProductID:     productID,
			Quantity:      quantity,
			UnitPriceSats: unitPriceSats,
		})
	}
	snap.UpdatedAt = int64(nostr.Now())
	snap.Normalize()

	if err := s.getRepo().Save(ctx, pk, common.KindCartState, key, snap); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return snap, nil
}

// RemoveItem drops a product line from the local working copy.
func (s *Service) RemoveItem(ctx context.Context, key string, productID string) (*models.CartSnapshot, error) {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	snap, err := s.localOrEmpty(ctx, pk, key)
	if err != nil {
		return nil, err
	}

	i := snap.Find(productID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s not in cart", common.ErrorNotFound, productID)
	}
	snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)
	snap.UpdatedAt = int64(nostr.Now())
	snap.Normalize()

	if err := s.getRepo().Save(ctx, pk, common.KindCartState, key, snap); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return snap, nil
}

// Clear drops the local working copy. Relay state is untouched; the next
// Sync repopulates from whatever is still published.
func (s *Service) Clear(ctx context.Context, key string) error {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return err
	}

	if err := s.getRepo().Delete(ctx, pk, common.KindCartState, key); err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}
	return nil
}

// Sync reconciles the local working copy with the newest snapshot the relay
// network holds, persists the merged result locally, and publishes it back.
// Only one Sync per aggregate key runs at a time; concurrent calls for the
// same key queue up.
//
// A remote ErrorNotFound means "nothing published yet" and merges as an
// absent remote. ErrorAllRelaysFailed is different: with no relay answering
// we cannot distinguish "never published" from "unreachable", so the sync
// fails rather than risk publishing a state that drops remote edits.
func (s *Service) Sync(ctx context.Context, key string, onProgress relaypool.Progress) (*models.CartSnapshot, error) {
	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	pk, err := s.signing.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := s.fetchRemote(ctx, pk, key)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("fetching remote cart: %w", err)
	}

	// The local read and the merged write happen in one transaction so a
	// crash between them never leaves a half-reconciled aggregate behind.
	// The network fetch stays outside; no transaction spans relay I/O.
	var merged *models.CartSnapshot
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := carts.NewSQLiteRepository(tx)

		local, err := repo.Get(ctx, pk, common.KindCartState, key)
		if errors.Is(err, common.ErrorNotFound) {
			local = &models.CartSnapshot{}
		} else if err != nil {
			return fmt.Errorf("error retrieving cart: %w", err)
		}

		merged = Merge(local, remote)
		return repo.Save(ctx, pk, common.KindCartState, key, merged)
	})
	if err != nil {
		return nil, fmt.Errorf("saving merged cart: %w", err)
	}

	if err := s.publishSnapshot(ctx, pk, key, merged, onProgress); err != nil {
		// merged state is already safe locally; surface the publish failure
		return merged, err
	}

	return merged, nil
}

func (s *Service) localOrEmpty(ctx context.Context, pk, key string) (*models.CartSnapshot, error) {
	snap, err := s.getRepo().Get(ctx, pk, common.KindCartState, key)
	if errors.Is(err, common.ErrorNotFound) {
		return &models.CartSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving cart: %w", err)
	}
	return snap, nil
}

func (s *Service) fetchRemote(ctx context.Context, pk, key string) (*models.CartSnapshot, error) {
	filter := nostr.Filter{
		Kinds:   []int{common.KindCartState},
		Authors: []string{pk},
		Tags:    nostr.TagMap{"d": []string{key}},
		Limit:   1,
	}

	ev, err := s.fetcher.FetchLatest(ctx, filter, s.relayURLs)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.signing.Decrypt(ctx, ev.Content, pk)
	if err != nil {
		return nil, fmt.Errorf("decrypting remote cart: %w", err)
	}

	snap := &models.CartSnapshot{}
	if err := json.Unmarshal([]byte(plaintext), snap); err != nil {
		return nil, fmt.Errorf("unmarshalling remote cart: %w", err)
	}
	if snap.UpdatedAt == 0 {
		snap.UpdatedAt = int64(ev.CreatedAt)
	}
	snap.Normalize()
	return snap, nil
}

func (s *Service) publishSnapshot(ctx context.Context, pk, key string, snap *models.CartSnapshot, onProgress relaypool.Progress) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling cart: %w", err)
	}

	ciphertext, err := s.signing.Encrypt(ctx, string(payload), pk)
	if err != nil {
		return fmt.Errorf("encrypting cart: %w", err)
	}

	ev, err := s.builder.Build(common.KindCartState, ciphertext, pk, nostr.Tags{{"d", key}})
	if err != nil {
		return err
	}
	if err := s.gateway.Sign(ctx, ev, s.signing); err != nil {
		return err
	}

	res, err := s.caster.Publish(ctx, ev, s.relayURLs, onProgress)
	if err != nil {
		return err
	}
	if !res.OverallSuccess {
		return fmt.Errorf("%w: cart state was not accepted anywhere", common.ErrorAllRelaysFailed)
	}
	if len(res.Failed) > 0 {
		s.log.Warn(ctx, "cart published partially",
			"published", len(res.Published), "total", len(s.relayURLs))
	}
	return nil
}
