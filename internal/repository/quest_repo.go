package repository

import (
	"context"
	"time"

	"root_tycoon/internal/domain"

	"github.com/jackc/pgx/v5"
)

// QuestRepository хранит ежедневные квесты игрока
type QuestRepository struct{}

func (QuestRepository) ListWithTx(ctx context.Context, tx pgx.Tx, userID int64) ([]domain.UserQuest, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, user_id, quest_id, day, requirement, progress, target, reward,
				completed, claimed, completed_at, claimed_at
		 FROM user_quests
		 WHERE user_id = $1
		 ORDER BY quest_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserQuest
	for rows.Next() {
		var q domain.UserQuest
		var day time.Time
		if err := rows.Scan(&q.ID, &q.UserID, &q.QuestID, &day, &q.Requirement, &q.Progress, &q.Target, &q.Reward,
			&q.Completed, &q.Claimed, &q.CompletedAt, &q.ClaimedAt); err != nil {
			return nil, err
		}
		q.Day = domain.DayFromDate(day)
		res = append(res, q)
	}
	return res, rows.Err()
}

// SyncWithTx replaces the stored quest set with quests; instances from
// earlier days are dropped.
func (QuestRepository) SyncWithTx(ctx context.Context, tx pgx.Tx, userID int64, quests []domain.UserQuest) error {
	keep := make([]string, 0, len(quests))
	for _, q := range quests {
		keep = append(keep, q.ID)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM user_quests WHERE user_id = $1 AND NOT (id = ANY($2))`,
		userID, keep,
	); err != nil {
		return err
	}

	for _, q := range quests {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_quests (user_id, id, quest_id, day, requirement, progress, target, reward,
			                          completed, claimed, completed_at, claimed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (user_id, id) DO UPDATE
			 SET progress = EXCLUDED.progress,
			     completed = EXCLUDED.completed,
			     claimed = EXCLUDED.claimed,
			     completed_at = EXCLUDED.completed_at,
			     claimed_at = EXCLUDED.claimed_at`,
			userID, q.ID, q.QuestID, q.Day.Date(), string(q.Requirement), q.Progress, q.Target, q.Reward,
			q.Completed, q.Claimed, q.CompletedAt, q.ClaimedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
