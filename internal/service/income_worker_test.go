package service

import (
	"context"
	"testing"
	"time"
)

func TestIncomeWorkerRunOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"rex", "kid", "jue"} {
		id := env.register(t, name)
		if _, err := env.game.BuyServer(ctx, id, "basic"); err != nil {
			t.Fatalf("buy: %v", err)
		}
		ids = append(ids, id)
	}
	idle := env.register(t, "cypher")

	env.clock.Advance(3 * time.Minute)
	w := NewIncomeWorker(env.store, env.game, time.Minute)
	if st := w.Status(); st.LastRun != nil {
		t.Fatalf("status before first run: %+v", st)
	}
	if total := w.RunOnce(ctx); total != 300 {
		t.Fatalf("credited %d, want 300", total)
	}
	for _, id := range ids {
		if u := env.user(t, id); u.Balance != 100 {
			t.Fatalf("user %d balance = %d, want 100", id, u.Balance)
		}
	}
	if u := env.user(t, idle); u.Balance != 1000 {
		t.Fatalf("idle balance = %d", u.Balance)
	}
	if st := w.Status(); st.LastRun == nil || st.Credited != 300 || st.Interval != "1m0s" {
		t.Fatalf("status after run: %+v", st)
	}

	// a request right after the batch finds nothing left to credit
	res, err := env.game.CollectIncome(ctx, ids[0])
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if res.Credited != 0 {
		t.Fatalf("credited %d after batch", res.Credited)
	}
}

func TestIncomeWorkerStopsOnCancel(t *testing.T) {
	env := newTestEnv(t)
	w := NewIncomeWorker(env.store, env.game, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
