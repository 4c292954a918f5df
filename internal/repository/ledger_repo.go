package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"root_tycoon/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultLedgerLimit caps a ledger page when the caller passes no limit.
const DefaultLedgerLimit = 100

// LedgerRepository stores balance changes in the transactions table.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// AppendWithTx writes entries inside tx as one batch and fills in their ids
// and timestamps.
func (r *LedgerRepository) AppendWithTx(ctx context.Context, tx pgx.Tx, entries []domain.Transaction) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range entries {
		e := &entries[i]
		meta := []byte("{}")
		if len(e.Meta) > 0 {
			b, err := json.Marshal(e.Meta)
			if err != nil {
				return fmt.Errorf("ledger meta: %w", err)
			}
			meta = b
		}
		batch.Queue(`INSERT INTO transactions (user_id, type, amount, meta)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`, e.UserID, e.Type, e.Amount, meta,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&e.ID, &e.CreatedAt)
		})
	}
	return tx.SendBatch(ctx, batch).Close()
}

// Recent returns the newest entries of userID.
func (r *LedgerRepository) Recent(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultLedgerLimit
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, amount, meta, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Transaction, error) {
		var (
			t    domain.Transaction
			meta []byte
		)
		if err := row.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &meta, &t.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &t.Meta)
		}
		return &t, nil
	})
}
