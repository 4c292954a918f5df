package service

import (
	"context"
	"log/slog"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/logger"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
	// warmLimit is how many players per metric are copied into redis at startup.
	warmLimit = 1000
)

// RankingService serves the leaderboard from redis when it has data and
// from the database otherwise.
type RankingService struct {
	store RankingStore
	board LeaderboardCache
	log   *slog.Logger
}

func NewRankingService(store RankingStore, board LeaderboardCache) *RankingService {
	return &RankingService{store: store, board: board, log: logger.Component("ranking")}
}

// ParseMetric defaults to balance.
func ParseMetric(s string) (domain.LeaderboardMetric, error) {
	switch domain.LeaderboardMetric(s) {
	case "", domain.MetricBalance:
		return domain.MetricBalance, nil
	case domain.MetricExperience:
		return domain.MetricExperience, nil
	}
	return "", ErrInvalidInput
}

func (s *RankingService) Leaderboard(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	if s.board != nil {
		entries, err := s.board.Top(ctx, metric, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			s.log.Warn("leaderboard cache read failed", "metric", metric, "error", err)
		}
	}

	entries, err := s.store.Top(ctx, metric, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}

// Rank is nil when the cache is not configured or the player is unranked.
func (s *RankingService) Rank(ctx context.Context, metric domain.LeaderboardMetric, userID int64) (*domain.LeaderboardEntry, error) {
	if s.board == nil {
		return nil, nil
	}
	return s.board.Rank(ctx, metric, userID)
}

func (s *RankingService) Stats(ctx context.Context) (*domain.GlobalStats, error) {
	return s.store.Stats(ctx)
}

// Warm copies the database top lists into the cache.
func (s *RankingService) Warm(ctx context.Context) error {
	if s.board == nil {
		return nil
	}
	for _, metric := range []domain.LeaderboardMetric{domain.MetricBalance, domain.MetricExperience} {
		entries, err := s.store.Top(ctx, metric, warmLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := s.board.Set(ctx, metric, e); err != nil {
				return err
			}
		}
		s.log.Info("leaderboard warmed", "metric", metric, "players", len(entries))
	}
	return nil
}
