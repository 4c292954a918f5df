package domain

import "time"

// RequirementType - what advances a daily quest
type RequirementType string

const (
	RequirementJob    RequirementType = "job"
	RequirementIncome RequirementType = "income"
)

// UserQuest is one daily quest instance. ID is "<QuestID>_<YYYY-MM-DD>".
type UserQuest struct {
	ID          string          `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	QuestID     string          `db:"quest_id" json:"quest_id"`
	Day         Day             `db:"day" json:"day"`
	Requirement RequirementType `db:"requirement" json:"requirement"`
	Progress    int64           `db:"progress" json:"progress"`
	Target      int64           `db:"target" json:"target"`
	Reward      int64           `db:"reward" json:"reward"`
	Completed   bool            `db:"completed" json:"completed"`
	Claimed     bool            `db:"claimed" json:"claimed"`
	CompletedAt *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	ClaimedAt   *time.Time      `db:"claimed_at" json:"claimed_at,omitempty"`
}

// CanClaim проверяет, можно ли забрать награду
func (q *UserQuest) CanClaim() bool {
	return q.Completed && !q.Claimed
}

// Percent returns progress in percent (0-100)
func (q *UserQuest) Percent() int {
	if q.Target <= 0 {
		return 100
	}
	p := q.Progress * 100 / q.Target
	if p > 100 {
		return 100
	}
	return int(p)
}
