package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserExists = errors.New("email or username already taken")

const userColumns = `id, email, username, password_hash, created_at,
	balance, experience, server_limit, tutorial_completed, job_last_completed, completed_learning,
	vip_expires_at, premium_active, premium_granted_at,
	last_daily_bonus, daily_streak, last_income_update, income_carry, last_quest_reset,
	total_jobs, total_earned, servers_bought, claimed_achievements`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	jobs, err := json.Marshal(u.JobLastCompleted)
	if err != nil {
		return fmt.Errorf("encode job cooldowns: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash, created_at, balance, server_limit,
		                    job_last_completed, last_income_update)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		u.Email, u.Username, u.PasswordHash, u.CreatedAt, u.Balance, u.ServerLimit, jobs, u.LastIncomeUpdate,
	).Scan(&u.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUserExists
	}
	return err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Top returns users ordered by the metric column.
func (r *UserRepository) Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	column := "balance"
	if metric == domain.MetricExperience {
		column = "experience"
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, username, `+column+`
		 FROM users
		 ORDER BY `+column+` DESC, id ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score); err != nil {
			return nil, err
		}
		e.Rank = int64(len(res) + 1)
		res = append(res, e)
	}
	return res, rows.Err()
}

// Stats aggregates over all players.
func (r *UserRepository) Stats(ctx context.Context) (*domain.GlobalStats, error) {
	var s domain.GlobalStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COALESCE(SUM(balance), 0) FROM users),
			(SELECT COUNT(*) FROM servers),
			(SELECT COUNT(*) FROM servers WHERE online)
	`).Scan(&s.Players, &s.TotalBalance, &s.Servers, &s.OnlineServers)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var jobs []byte
	var lastBonus, lastQuest *time.Time
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt,
		&u.Balance, &u.Experience, &u.ServerLimit, &u.TutorialCompleted, &jobs, &u.CompletedLearning,
		&u.VIPExpiresAt, &u.PremiumActive, &u.PremiumGrantedAt,
		&lastBonus, &u.DailyStreak, &u.LastIncomeUpdate, &u.IncomeCarry, &lastQuest,
		&u.TotalJobs, &u.TotalEarned, &u.ServersBought, &u.ClaimedAchievements,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.JobLastCompleted = map[domain.JobType]time.Time{}
	if len(jobs) > 0 {
		if err := json.Unmarshal(jobs, &u.JobLastCompleted); err != nil {
			return nil, fmt.Errorf("decode job cooldowns for user %d: %w", u.ID, err)
		}
	}
	if lastBonus != nil {
		u.LastDailyBonus = domain.DayFromDate(*lastBonus)
	}
	if lastQuest != nil {
		u.LastQuestReset = domain.DayFromDate(*lastQuest)
	}
	return &u, nil
}

// dateArg maps the zero day to NULL.
func dateArg(d domain.Day) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.Date()
}
