package domain

// LeaderboardMetric selects the ranking column.
type LeaderboardMetric string

const (
	MetricBalance    LeaderboardMetric = "balance"
	MetricExperience LeaderboardMetric = "experience"
)

type LeaderboardEntry struct {
	Rank     int64  `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Score    int64  `json:"score"`
}

// GlobalStats are cross-user aggregates.
type GlobalStats struct {
	Players       int64 `json:"players"`
	Servers       int64 `json:"servers"`
	OnlineServers int64 `json:"online_servers"`
	TotalBalance  int64 `json:"total_balance"`
}
