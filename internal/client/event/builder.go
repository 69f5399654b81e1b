// Package event turns typed payloads into canonical, hash-identified,
// unsigned events ready for signing and publication.
package event

import (
	"encoding/hex"
	"fmt"

	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/common"
)

// Builder constructs unsigned events. The clock is injectable so that
// building the same payload twice in a test yields the same id.
type Builder struct {
	now func() nostr.Timestamp
}

func NewBuilder() *Builder {
	return &Builder{now: nostr.Now}
}

// NewBuilderWithClock returns a Builder with a fixed time source.
func NewBuilderWithClock(now func() nostr.Timestamp) *Builder {
	return &Builder{now: now}
}

// Build assembles an unsigned event: caller tags are preserved in insertion
// order, then the protocol client tag is appended, and the canonical id is
// computed over the serialized form. The result carries no signature; signing
// is a separate step.
//
// Build is pure apart from reading the clock; it performs no I/O.
func (b *Builder) Build(kind int, content string, pubkey string, extra nostr.Tags) (*nostr.Event, error) {
	if !isValidPubkey(pubkey) {
		return nil, fmt.Errorf("%w: author pubkey must be 64 hex chars", common.ErrorValidation)
	}
	if kind <= 0 {
		return nil, fmt.Errorf("%w: kind must be positive, got %d", common.ErrorValidation, kind)
	}
	if content == "" && contentRequired(kind) {
		return nil, fmt.Errorf("%w: kind %d requires non-empty content", common.ErrorValidation, kind)
	}

	tags := make(nostr.Tags, 0, len(extra)+1)
	for _, tag := range extra {
		if len(tag) == 0 || tag[0] == "" {
			return nil, fmt.Errorf("%w: tag must have a non-empty key", common.ErrorValidation)
		}
		tags = append(tags, tag)
	}
	tags = append(tags, nostr.Tag{"client", common.ClientTagValue})

	ev := &nostr.Event{
		PubKey:    pubkey,
		CreatedAt: b.now(),
		Kind:      kind,
		Tags:      tags,
		Content:   content,
	}
	ev.ID = ev.GetID()

	return ev, nil
}

// contentRequired reports whether the kind carries a payload in its content
// field. Blob-auth events express everything through tags.
func contentRequired(kind int) bool {
	return kind != common.KindBlobAuth
}

func isValidPubkey(pk string) bool {
	if len(pk) != 64 {
		return false
	}
	_, err := hex.DecodeString(pk)
	return err == nil
}
