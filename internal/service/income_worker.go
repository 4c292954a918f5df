package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"root_tycoon/internal/logger"
	"root_tycoon/internal/metrics"
)

// incomeWorkerConcurrency bounds parallel reconciliations per pass.
const incomeWorkerConcurrency = 8

// IncomeWorker periodically reconciles income for every player with an
// online server so balances and leaderboards stay fresh for idle players.
// Reads reconcile on their own, the worker only moves the moment forward.
type IncomeWorker struct {
	store    PlayerStore
	game     *GameService
	interval time.Duration
	log      *slog.Logger

	lastRun      atomic.Int64 // unix seconds
	lastCredited atomic.Int64
}

// WorkerStatus describes the last finished pass.
type WorkerStatus struct {
	LastRun  *time.Time `json:"last_run,omitempty"`
	Credited int64      `json:"credited"`
	Interval string     `json:"interval"`
}

func (w *IncomeWorker) Status() WorkerStatus {
	st := WorkerStatus{Credited: w.lastCredited.Load(), Interval: w.interval.String()}
	if ts := w.lastRun.Load(); ts > 0 {
		t := time.Unix(ts, 0).UTC()
		st.LastRun = &t
	}
	return st
}

func NewIncomeWorker(store PlayerStore, gs *GameService, interval time.Duration) *IncomeWorker {
	return &IncomeWorker{
		store:    store,
		game:     gs,
		interval: interval,
		log:      logger.Component("income_worker"),
	}
}

func (w *IncomeWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info("income worker disabled")
		return
	}
	w.log.Info("income worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("income worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce reconciles all eligible players and returns the total credited.
func (w *IncomeWorker) RunOnce(ctx context.Context) int64 {
	start := time.Now()
	var total int64
	defer func() {
		metrics.IncomeBatchDuration.Observe(time.Since(start).Seconds())
		w.lastRun.Store(start.Unix())
		w.lastCredited.Store(total)
	}()

	ids, err := w.store.IncomeUserIDs(ctx)
	if err != nil {
		w.log.Error("failed to list players", "error", err)
		return 0
	}
	if len(ids) == 0 {
		return 0
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	sem := make(chan struct{}, incomeWorkerConcurrency)
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(userID int64) {
			defer wg.Done()
			defer func() { <-sem }()

			credited, err := w.game.ReconcileIncome(ctx, userID)
			if err != nil {
				w.log.Warn("reconcile failed", "user_id", userID, "error", err)
				return
			}
			mu.Lock()
			total += credited
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	w.log.Debug("income batch done", "players", len(ids), "credited", total, "took", time.Since(start))
	return total
}
