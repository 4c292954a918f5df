package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"root_tycoon/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayerRepository loads a player aggregate under a row lock and writes it
// back, together with its ledger entries, in one transaction.
type PlayerRepository struct {
	db      *pgxpool.Pool
	servers ServerRepository
	quests  QuestRepository
	ledger  *LedgerRepository
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		ledger: NewLedgerRepository(db),
	}
}

// WithPlayer runs fn on the locked player. If fn returns an error nothing is
// written.
func (r *PlayerRepository) WithPlayer(ctx context.Context, userID int64, fn func(p *domain.Player) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
	if err != nil {
		return err
	}
	p := &domain.Player{User: *u}

	if p.Servers, err = r.servers.ListWithTx(ctx, tx, userID); err != nil {
		return fmt.Errorf("load servers: %w", err)
	}
	if p.Quests, err = r.quests.ListWithTx(ctx, tx, userID); err != nil {
		return fmt.Errorf("load quests: %w", err)
	}
	if p.User.ActiveCourse, err = activeCourseWithTx(ctx, tx, userID); err != nil {
		return fmt.Errorf("load course: %w", err)
	}

	var activeID int64
	if p.User.ActiveCourse != nil {
		activeID = p.User.ActiveCourse.ID
	}

	if err := fn(p); err != nil {
		return err
	}

	if err := updateUserWithTx(ctx, tx, &p.User); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := r.servers.SyncWithTx(ctx, tx, userID, p.Servers); err != nil {
		return fmt.Errorf("save servers: %w", err)
	}
	if err := r.quests.SyncWithTx(ctx, tx, userID, p.Quests); err != nil {
		return fmt.Errorf("save quests: %w", err)
	}
	if err := syncCourseWithTx(ctx, tx, userID, activeID, p.User.ActiveCourse); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	if err := r.ledger.AppendWithTx(ctx, tx, p.Ledger); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}

	return tx.Commit(ctx)
}

// IncomeUserIDs lists players that own at least one online server.
func (r *PlayerRepository) IncomeUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT user_id FROM servers WHERE online ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PlayerRepository) Transactions(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return r.ledger.Recent(ctx, userID, limit)
}

func updateUserWithTx(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	jobs, err := json.Marshal(u.JobLastCompleted)
	if err != nil {
		return err
	}
	completed := u.CompletedLearning
	if completed == nil {
		completed = []string{}
	}
	achievements := u.ClaimedAchievements
	if achievements == nil {
		achievements = []string{}
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET
			balance = $2, experience = $3, server_limit = $4, tutorial_completed = $5,
			job_last_completed = $6, completed_learning = $7,
			vip_expires_at = $8, premium_active = $9, premium_granted_at = $10,
			last_daily_bonus = $11, daily_streak = $12, last_income_update = $13, income_carry = $14,
			last_quest_reset = $15, total_jobs = $16, total_earned = $17, servers_bought = $18,
			claimed_achievements = $19
		 WHERE id = $1`,
		u.ID, u.Balance, u.Experience, u.ServerLimit, u.TutorialCompleted,
		jobs, completed,
		u.VIPExpiresAt, u.PremiumActive, u.PremiumGrantedAt,
		dateArg(u.LastDailyBonus), u.DailyStreak, u.LastIncomeUpdate, u.IncomeCarry,
		dateArg(u.LastQuestReset), u.TotalJobs, u.TotalEarned, u.ServersBought,
		achievements,
	)
	return err
}

func activeCourseWithTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.ActiveCourse, error) {
	var c domain.ActiveCourse
	err := tx.QueryRow(ctx,
		`SELECT id, course_id, started_at, ends_at
		 FROM learning_courses
		 WHERE user_id = $1 AND NOT completed`,
		userID,
	).Scan(&c.ID, &c.CourseID, &c.StartedAt, &c.EndsAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// syncCourseWithTx closes the course that was active at load time if it is
// gone, and inserts a newly started one.
func syncCourseWithTx(ctx context.Context, tx pgx.Tx, userID, loadedID int64, active *domain.ActiveCourse) error {
	if loadedID != 0 && (active == nil || active.ID != loadedID) {
		if _, err := tx.Exec(ctx,
			`UPDATE learning_courses SET completed = true, completed_at = ends_at WHERE id = $1`,
			loadedID,
		); err != nil {
			return err
		}
	}
	if active != nil && active.ID == 0 {
		return tx.QueryRow(ctx,
			`INSERT INTO learning_courses (user_id, course_id, started_at, ends_at)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			userID, active.CourseID, active.StartedAt, active.EndsAt,
		).Scan(&active.ID)
	}
	return nil
}
