package signer

import (
	"context"
	"testing"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/satchel/internal/common"
)

func TestNewLocalSigner_HexKey(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	s, err := NewLocalSigner(sk)
	require.NoError(t, err)

	want, err := nostr.GetPublicKey(sk)
	require.NoError(t, err)

	got, err := s.PublicKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewLocalSigner_NsecKey(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	nsec, err := nip19.EncodePrivateKey(sk)
	require.NoError(t, err)

	s, err := NewLocalSigner(nsec)
	require.NoError(t, err)

	want, _ := nostr.GetPublicKey(sk)
	got, err := s.PublicKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewLocalSigner_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"garbage", "not-a-key"},
		{"bad nsec", "nsec1qqqqqqqq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocalSigner(tt.key)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestLocalSigner_SignAndVerify(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	s, err := NewLocalSigner(sk)
	require.NoError(t, err)

	ev := &nostr.Event{
		PubKey:    s.pk,
		CreatedAt: nostr.Now(),
		Kind:      common.KindTextNote,
		Tags:      nostr.Tags{{"t", "test"}},
		Content:   "signed content",
	}
	require.NoError(t, s.SignEvent(context.Background(), ev))

	ok, err := ev.CheckSignature()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalSigner_TamperAfterSigningFailsVerification(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	s, err := NewLocalSigner(sk)
	require.NoError(t, err)

	ev := &nostr.Event{
		PubKey:    s.pk,
		CreatedAt: nostr.Now(),
		Kind:      common.KindTextNote,
		Content:   "original",
	}
	require.NoError(t, s.SignEvent(context.Background(), ev))

	tests := []struct {
		name   string
		mutate func(e *nostr.Event)
	}{
		{"content", func(e *nostr.Event) { e.Content = "tampered" }},
		{"kind", func(e *nostr.Event) { e.Kind = common.KindListing }},
		{"created_at", func(e *nostr.Event) { e.CreatedAt++ }},
		{"tags", func(e *nostr.Event) { e.Tags = nostr.Tags{{"price", "1"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := *ev
			tt.mutate(&mutated)
			ok, _ := mutated.CheckSignature()
			assert.False(t, ok, "mutated event must not verify")
		})
	}
}

func TestLocalSigner_EncryptDecryptToSelf(t *testing.T) {
	sk := nostr.GeneratePrivateKey()
	s, err := NewLocalSigner(sk)
	require.NoError(t, err)
	ctx := context.Background()

	pk, err := s.PublicKey(ctx)
	require.NoError(t, err)

	ciphertext, err := s.Encrypt(ctx, `{"items":[]}`, pk)
	require.NoError(t, err)
	require.NotEqual(t, `{"items":[]}`, ciphertext)

	plaintext, err := s.Decrypt(ctx, ciphertext, pk)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, plaintext)
}
