package domain

import "time"

// JobType identifies a job in the job catalog.
type JobType string

// Tier is the effective subscription level.
type Tier string

const (
	TierNone    Tier = "none"
	TierVIP     Tier = "vip"
	TierPremium Tier = "premium"
)

// User is the per-player record every reconciliation reads and writes.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	Balance     int64 `db:"balance" json:"balance"`
	Experience  int64 `db:"experience" json:"experience"`
	ServerLimit int   `db:"server_limit" json:"server_limit"` // base + learned slots, without tier bonus

	TutorialCompleted bool `db:"tutorial_completed" json:"tutorial_completed"`

	JobLastCompleted map[JobType]time.Time `db:"job_last_completed" json:"job_last_completed"`

	ActiveCourse      *ActiveCourse `db:"-" json:"active_course,omitempty"`
	CompletedLearning []string      `db:"completed_learning" json:"completed_learning"`

	VIPExpiresAt     *time.Time `db:"vip_expires_at" json:"vip_expires_at,omitempty"`
	PremiumActive    bool       `db:"premium_active" json:"premium_active"`
	PremiumGrantedAt *time.Time `db:"premium_granted_at" json:"premium_granted_at,omitempty"`

	LastDailyBonus Day `db:"last_daily_bonus" json:"last_daily_bonus"`
	DailyStreak    int `db:"daily_streak" json:"daily_streak"`

	LastIncomeUpdate time.Time `db:"last_income_update" json:"last_income_update"`
	IncomeCarry      float64   `db:"income_carry" json:"-"` // fractional currency not yet credited

	LastQuestReset Day `db:"last_quest_reset" json:"last_quest_reset"`

	TotalJobs           int64    `db:"total_jobs" json:"total_jobs"`
	TotalEarned         int64    `db:"total_earned" json:"total_earned"`
	ServersBought       int64    `db:"servers_bought" json:"servers_bought"`
	ClaimedAchievements []string `db:"claimed_achievements" json:"claimed_achievements"`
}

// HasCompleted reports whether courseID is in the completed learning set.
func (u *User) HasCompleted(courseID string) bool {
	for _, id := range u.CompletedLearning {
		if id == courseID {
			return true
		}
	}
	return false
}

// HasAchievement reports whether achievement id was already claimed.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.ClaimedAchievements {
		if a == id {
			return true
		}
	}
	return false
}
