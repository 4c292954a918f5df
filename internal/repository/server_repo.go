package repository

import (
	"context"

	"root_tycoon/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ServerRepository reads and writes servers inside a player transaction.
type ServerRepository struct{}

func (ServerRepository) ListWithTx(ctx context.Context, tx pgx.Tx, userID int64) ([]domain.Server, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, user_id, type, online, load, ready_at, created_at
		 FROM servers
		 WHERE user_id = $1
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Server
	for rows.Next() {
		var s domain.Server
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &s.Online, &s.Load, &s.ReadyAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// SyncWithTx makes the stored servers of userID match servers: rows missing
// from the slice are deleted, rows with ID 0 are inserted and get their ID.
func (ServerRepository) SyncWithTx(ctx context.Context, tx pgx.Tx, userID int64, servers []domain.Server) error {
	keep := make([]int64, 0, len(servers))
	for _, s := range servers {
		if s.ID != 0 {
			keep = append(keep, s.ID)
		}
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM servers WHERE user_id = $1 AND NOT (id = ANY($2))`,
		userID, keep,
	); err != nil {
		return err
	}

	for i := range servers {
		s := &servers[i]
		if s.ID == 0 {
			err := tx.QueryRow(ctx,
				`INSERT INTO servers (user_id, type, online, load, ready_at, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id`,
				userID, s.Type, s.Online, s.Load, s.ReadyAt, s.CreatedAt,
			).Scan(&s.ID)
			if err != nil {
				return err
			}
			continue
		}
		if _, err := tx.Exec(ctx,
			`UPDATE servers SET online = $1, load = $2 WHERE id = $3 AND user_id = $4`,
			s.Online, s.Load, s.ID, userID,
		); err != nil {
			return err
		}
	}
	return nil
}
