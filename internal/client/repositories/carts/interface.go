// Package carts persists the local cart aggregate, keyed by
// (author pubkey, event kind, aggregate key).
package carts

import (
	"context"

	"github.com/dmitrijs2005/satchel/internal/client/models"
)

type Repository interface {
	// Get returns the stored snapshot or common.ErrorNotFound.
	Get(ctx context.Context, pubkey string, kind int, key string) (*models.CartSnapshot, error)

	// Save upserts the snapshot for the aggregate.
	Save(ctx context.Context, pubkey string, kind int, key string, s *models.CartSnapshot) error

	// Delete removes the aggregate's local copy.
	Delete(ctx context.Context, pubkey string, kind int, key string) error
}
