package domain

import "time"

// Ledger entry types
const (
	TxJob            = "job"
	TxServerPurchase = "server_purchase"
	TxCoursePurchase = "course_purchase"
	TxDailyBonus     = "daily_bonus"
	TxQuestReward    = "quest_reward"
	TxAchievement    = "achievement"
	TxTutorial       = "tutorial"
)

type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
