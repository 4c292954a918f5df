package service

import (
	"context"
	"errors"
	"testing"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
)

// fakeBoard is an in-memory LeaderboardCache.
type fakeBoard struct {
	entries map[domain.LeaderboardMetric][]domain.LeaderboardEntry
	updates int
	err     error
}

func (b *fakeBoard) Update(ctx context.Context, u *domain.User) error {
	b.updates++
	return b.err
}

func (b *fakeBoard) Set(ctx context.Context, metric domain.LeaderboardMetric, e domain.LeaderboardEntry) error {
	if b.entries == nil {
		b.entries = map[domain.LeaderboardMetric][]domain.LeaderboardEntry{}
	}
	b.entries[metric] = append(b.entries[metric], e)
	return nil
}

func (b *fakeBoard) Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	if b.err != nil {
		return nil, b.err
	}
	es := b.entries[metric]
	if len(es) > limit {
		es = es[:limit]
	}
	return es, nil
}

func (b *fakeBoard) Rank(ctx context.Context, metric domain.LeaderboardMetric, userID int64) (*domain.LeaderboardEntry, error) {
	for _, e := range b.entries[metric] {
		if e.UserID == userID {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func TestLeaderboardFallsBackToStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.register(t, "alpha")
	b := env.register(t, "bravo")

	if _, err := env.game.StartJob(ctx, b, game.JobScriptFix); err != nil {
		t.Fatalf("job: %v", err)
	}

	board := &fakeBoard{err: errors.New("redis down")}
	rs := NewRankingService(env.store, board)
	entries, err := rs.Leaderboard(ctx, domain.MetricBalance, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 || entries[0].UserID != b || entries[1].UserID != a {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Rank != 1 {
		t.Fatalf("rank = %d", entries[0].Rank)
	}
}

func TestLeaderboardWarmAndServeFromCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "charlie")
	env.register(t, "delta")

	board := &fakeBoard{}
	rs := NewRankingService(env.store, board)
	if err := rs.Warm(ctx); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if len(board.entries[domain.MetricBalance]) != 2 || len(board.entries[domain.MetricExperience]) != 2 {
		t.Fatalf("warmed %+v", board.entries)
	}

	entries, err := rs.Leaderboard(ctx, domain.MetricExperience, 1)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
}

func TestGameServiceUpdatesBoard(t *testing.T) {
	env := newTestEnv(t)
	board := &fakeBoard{}
	env.game.WithLeaderboard(board)
	id := env.register(t, "echo")

	if _, err := env.game.StartJob(context.Background(), id, game.JobScriptFix); err != nil {
		t.Fatalf("job: %v", err)
	}
	if board.updates != 1 {
		t.Fatalf("board updated %d times, want 1", board.updates)
	}
}

func TestParseMetric(t *testing.T) {
	for in, want := range map[string]domain.LeaderboardMetric{
		"":           domain.MetricBalance,
		"balance":    domain.MetricBalance,
		"experience": domain.MetricExperience,
	} {
		got, err := ParseMetric(in)
		if err != nil || got != want {
			t.Fatalf("ParseMetric(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMetric("karma"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "foxtrot")
	if _, err := env.game.BuyServer(ctx, id, "basic"); err != nil {
		t.Fatalf("buy: %v", err)
	}

	st, err := env.ranking.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Players != 1 || st.Servers != 1 || st.OnlineServers != 1 {
		t.Fatalf("stats = %+v", st)
	}
}
