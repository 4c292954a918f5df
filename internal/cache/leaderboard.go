package cache

import (
	"context"
	"fmt"
	"strconv"

	"root_tycoon/internal/domain"

	"github.com/redis/go-redis/v9"
)

var metrics = []domain.LeaderboardMetric{domain.MetricBalance, domain.MetricExperience}

// Leaderboard keeps player scores in sorted sets, one per metric.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// Update writes the current scores of u.
func (l *Leaderboard) Update(ctx context.Context, u *domain.User) error {
	member := strconv.FormatInt(u.ID, 10)
	pipe := l.rdb.Pipeline()
	pipe.ZAdd(ctx, fmt.Sprintf(KeyLeaderboard, domain.MetricBalance), redis.Z{Score: float64(u.Balance), Member: member})
	pipe.ZAdd(ctx, fmt.Sprintf(KeyLeaderboard, domain.MetricExperience), redis.Z{Score: float64(u.Experience), Member: member})
	pipe.HSet(ctx, KeyUsernames, member, u.Username)
	_, err := pipe.Exec(ctx)
	return err
}

// Set writes a single score, used to warm the cache from the database.
func (l *Leaderboard) Set(ctx context.Context, metric domain.LeaderboardMetric, e domain.LeaderboardEntry) error {
	member := strconv.FormatInt(e.UserID, 10)
	pipe := l.rdb.Pipeline()
	pipe.ZAdd(ctx, fmt.Sprintf(KeyLeaderboard, metric), redis.Z{Score: float64(e.Score), Member: member})
	pipe.HSet(ctx, KeyUsernames, member, e.Username)
	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the best limit players for metric.
func (l *Leaderboard) Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	results, err := l.rdb.ZRevRangeWithScores(ctx, fmt.Sprintf(KeyLeaderboard, metric), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	members := make([]string, 0, len(results))
	for _, z := range results {
		member, _ := z.Member.(string)
		members = append(members, member)
	}
	names, err := l.rdb.HMGet(ctx, KeyUsernames, members...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(results))
	for i, z := range results {
		id, _ := strconv.ParseInt(members[i], 10, 64)
		name, _ := names[i].(string)
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     int64(i + 1),
			UserID:   id,
			Username: name,
			Score:    int64(z.Score),
		})
	}
	return entries, nil
}

// Rank returns the position of userID, or nil when the player is not ranked.
func (l *Leaderboard) Rank(ctx context.Context, metric domain.LeaderboardMetric, userID int64) (*domain.LeaderboardEntry, error) {
	key := fmt.Sprintf(KeyLeaderboard, metric)
	member := strconv.FormatInt(userID, 10)

	rank, err := l.rdb.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	score, err := l.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		return nil, err
	}
	name, _ := l.rdb.HGet(ctx, KeyUsernames, member).Result()

	return &domain.LeaderboardEntry{Rank: rank + 1, UserID: userID, Username: name, Score: int64(score)}, nil
}

// Reset drops all leaderboard keys.
func (l *Leaderboard) Reset(ctx context.Context) error {
	pipe := l.rdb.Pipeline()
	for _, m := range metrics {
		pipe.Del(ctx, fmt.Sprintf(KeyLeaderboard, m))
	}
	pipe.Del(ctx, KeyUsernames)
	_, err := pipe.Exec(ctx)
	return err
}
