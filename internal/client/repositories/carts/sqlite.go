package carts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/satchel/internal/client/models"
	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the snapshot, stored as a JSON blob alongside its updated_at
// for cheap inspection.
func (r *SQLiteRepository) Save(ctx context.Context, pubkey string, kind int, key string, s *models.CartSnapshot) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `INSERT INTO carts (pubkey, kind, d_tag, snapshot, updated_at)
			values (?, ?, ?, ?, ?)
			ON CONFLICT(pubkey, kind, d_tag) DO UPDATE SET snapshot = excluded.snapshot,
				updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, pubkey, kind, key, blob, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, pubkey string, kind int, key string) (*models.CartSnapshot, error) {
	query := `select snapshot from carts where pubkey=? and kind=? and d_tag=?`
	row := r.db.QueryRowContext(ctx, query, pubkey, kind, key)

	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}

	s := &models.CartSnapshot{}
	if err := json.Unmarshal(blob, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, pubkey string, kind int, key string) error {
	query := `delete from carts where pubkey=? and kind=? and d_tag=?`
	if _, err := r.db.ExecContext(ctx, query, pubkey, kind, key); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
