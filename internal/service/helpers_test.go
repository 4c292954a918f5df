package service

import (
	"context"
	"testing"
	"time"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
	"root_tycoon/internal/repository/memstore"

	"golang.org/x/crypto/bcrypt"
)

var t0 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

const testWebhookSecret = "whsec-test"

type testEnv struct {
	clock    *clock.Mock
	store    *memstore.Store
	game     *GameService
	audit    *AuditService
	auth     *AuthService
	payments *PaymentService
	chat     *ChatService
	ranking  *RankingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	InitJWT("test-secret")

	clk := clock.NewMock(t0)
	store := memstore.New().WithClock(clk.Now)
	engine := game.NewEngine(game.DefaultRules(), clock.MustLoadZone(clock.DefaultZone))
	audit := NewAuditService(store)
	gs := NewGameService(engine, clk, store).WithAudit(audit)

	return &testEnv{
		clock:    clk,
		store:    store,
		game:     gs,
		audit:    audit,
		auth:     NewAuthService(store, engine, clk, audit).WithHashCost(bcrypt.MinCost),
		payments: NewPaymentService(store, gs, audit, clk, testWebhookSecret),
		chat:     NewChatService(store, store, clk),
		ranking:  NewRankingService(store, nil),
	}
}

// register creates a player and returns its id.
func (e *testEnv) register(t *testing.T, name string) int64 {
	t.Helper()
	sess, err := e.auth.Register(context.Background(), name+"@example.com", name, "password123", RequestInfo{})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return sess.User.ID
}

func (e *testEnv) user(t *testing.T, id int64) *domain.User {
	t.Helper()
	u, err := e.store.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get user %d: %v", id, err)
	}
	return u
}
