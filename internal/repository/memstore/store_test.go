package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
	"root_tycoon/internal/repository"
)

func newUser(t *testing.T, s *Store, name string) *domain.User {
	t.Helper()
	u := &domain.User{Username: name, Email: name + "@example.com", Balance: 1000}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return u
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	s := New()
	newUser(t, s, "alice")

	err := s.CreateUser(context.Background(), &domain.User{Username: "ALICE", Email: "other@example.com"})
	if !errors.Is(err, repository.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if _, err := s.GetUserByEmail(context.Background(), "Alice@Example.com"); err != nil {
		t.Fatalf("lookup by email is case-insensitive: %v", err)
	}
}

func TestWithPlayerCommitsOnlyOnSuccess(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := New().WithClock(func() time.Time { return now })
	u := newUser(t, s, "bob")
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithPlayer(ctx, u.ID, func(p *domain.Player) error {
		p.User.Balance = 0
		p.Servers = append(p.Servers, domain.Server{Type: "basic", Online: true})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error back, got %v", err)
	}
	got, _ := s.GetUserByID(ctx, u.ID)
	if got.Balance != 1000 {
		t.Fatalf("failed fn must not commit, balance=%d", got.Balance)
	}

	err = s.WithPlayer(ctx, u.ID, func(p *domain.Player) error {
		p.User.Balance -= 300
		p.Servers = append(p.Servers, domain.Server{UserID: u.ID, Type: "basic", Online: true})
		p.Record(domain.TxJob, -300, nil)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var servers []domain.Server
	_ = s.WithPlayer(ctx, u.ID, func(p *domain.Player) error {
		servers = p.Servers
		if len(p.Ledger) != 0 {
			t.Errorf("ledger must not be carried into the next write, got %d", len(p.Ledger))
		}
		return nil
	})
	if len(servers) != 1 || servers[0].ID == 0 {
		t.Fatalf("server should be stored with an id: %+v", servers)
	}

	txs, _ := s.Transactions(ctx, u.ID, 10)
	if len(txs) != 1 || txs[0].Amount != -300 || !txs[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected ledger: %+v", txs)
	}

	ids, _ := s.IncomeUserIDs(ctx)
	if len(ids) != 1 || ids[0] != u.ID {
		t.Fatalf("income ids = %v", ids)
	}
}

func TestWithPlayerUnknownUser(t *testing.T) {
	err := New().WithPlayer(context.Background(), 42, func(*domain.Player) error { return nil })
	if !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTopOrdersByScoreThenID(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := newUser(t, s, "a")
	newUser(t, s, "b")
	c := newUser(t, s, "c")
	_ = s.WithPlayer(ctx, c.ID, func(p *domain.Player) error {
		p.User.Balance = 5000
		return nil
	})

	top, err := s.Top(ctx, domain.MetricBalance, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].UserID != c.ID || top[1].UserID != a.ID || top[1].Rank != 2 {
		t.Fatalf("unexpected top: %+v", top)
	}

	st, _ := s.Stats(ctx)
	if st.Players != 3 || st.TotalBalance != 7000 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
