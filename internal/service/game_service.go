package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
	"root_tycoon/internal/logger"
	"root_tycoon/internal/metrics"
)

const (
	sourceRequest = "request"
	sourceBatch   = "batch"
)

// GameService runs every player operation as: lock user, load, reconcile
// with the clock, apply, save.
type GameService struct {
	engine *game.Engine
	clock  clock.Clock
	store  PlayerStore
	board  LeaderboardCache
	audit  *AuditService
	locks  *userLocks
	log    *slog.Logger
}

func NewGameService(engine *game.Engine, clk clock.Clock, store PlayerStore) *GameService {
	return &GameService{
		engine: engine,
		clock:  clk,
		store:  store,
		locks:  newUserLocks(),
		log:    logger.Component("game"),
	}
}

// WithLeaderboard pushes scores to board after each committed change.
func (s *GameService) WithLeaderboard(board LeaderboardCache) *GameService {
	s.board = board
	return s
}

func (s *GameService) WithAudit(audit *AuditService) *GameService {
	s.audit = audit
	return s
}

func (s *GameService) Engine() *game.Engine {
	return s.engine
}

// mutation is a committed player state and the instant it was computed for.
type mutation struct {
	Player     *domain.Player
	Now        time.Time
	Reconciled game.ReconcileResult
}

func (s *GameService) mutate(ctx context.Context, userID int64, action string, op func(p *domain.Player, now time.Time) error) (*mutation, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	m := &mutation{Now: s.clock.Now()}
	err := s.store.WithPlayer(ctx, userID, func(p *domain.Player) error {
		m.Reconciled = s.engine.Reconcile(p, m.Now)
		if op != nil {
			if err := op(p, m.Now); err != nil {
				return err
			}
		}
		m.Player = p
		return nil
	})
	if action != "" {
		metrics.Actions.WithLabelValues(action, metrics.Outcome(err)).Inc()
	}
	if err != nil {
		if !game.IsRuleError(err) {
			s.log.Error("player update failed", "user_id", userID, "action", action, "error", err,
				"request_id", logger.RequestID(ctx))
		}
		return nil, err
	}

	s.afterCommit(ctx, m, action)
	return m, nil
}

func (s *GameService) afterCommit(ctx context.Context, m *mutation, action string) {
	u := &m.Player.User
	if m.Reconciled.Income > 0 {
		source := sourceRequest
		if action == "batch_income" {
			source = sourceBatch
		}
		metrics.IncomeCredited.WithLabelValues(source).Add(float64(m.Reconciled.Income))
	}
	if c := m.Reconciled.CompletedCourse; c != nil {
		metrics.CoursesCompleted.WithLabelValues(c.ID).Inc()
		s.log.Info("course completed", "user_id", u.ID, "course", c.ID)
		s.audit.Record(ctx, u.ID, domain.AuditActionLearningComplete,
			map[string]interface{}{"course": c.ID, "reward": string(c.Reward)})
	}
	if s.board != nil {
		if err := s.board.Update(ctx, u); err != nil {
			s.log.Warn("leaderboard update failed", "user_id", u.ID, "error", err)
		}
	}
}

// Snapshot reconciles and returns the full player view.
func (s *GameService) Snapshot(ctx context.Context, userID int64) (*game.Snapshot, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	snap := s.engine.Snapshot(m.Player, m.Now)
	return &snap, nil
}

type IncomeResult struct {
	Credited        int64   `json:"credited"`
	Balance         int64   `json:"balance"`
	IncomePerMinute float64 `json:"income_per_minute"`
}

// CollectIncome credits passive income up to now.
func (s *GameService) CollectIncome(ctx context.Context, userID int64) (*IncomeResult, error) {
	m, err := s.mutate(ctx, userID, "collect_income", nil)
	if err != nil {
		return nil, err
	}
	return &IncomeResult{
		Credited:        m.Reconciled.Income,
		Balance:         m.Player.User.Balance,
		IncomePerMinute: game.IncomePerMinute(m.Player, m.Now),
	}, nil
}

// ReconcileIncome is the batch worker entry point.
func (s *GameService) ReconcileIncome(ctx context.Context, userID int64) (int64, error) {
	m, err := s.mutate(ctx, userID, "batch_income", nil)
	if err != nil {
		return 0, err
	}
	return m.Reconciled.Income, nil
}

func (s *GameService) CompleteTutorial(ctx context.Context, userID int64) (*domain.User, error) {
	m, err := s.mutate(ctx, userID, "tutorial", func(p *domain.Player, now time.Time) error {
		return s.engine.CompleteTutorial(p, now)
	})
	if err != nil {
		return nil, err
	}
	return &m.Player.User, nil
}

func (s *GameService) Jobs(ctx context.Context, userID int64) ([]game.JobView, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	return s.engine.JobViews(&m.Player.User, m.Now), nil
}

func (s *GameService) StartJob(ctx context.Context, userID int64, job domain.JobType) (*game.JobResult, error) {
	var res *game.JobResult
	_, err := s.mutate(ctx, userID, "job", func(p *domain.Player, now time.Time) error {
		var err error
		res, err = s.engine.StartJob(p, job, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *GameService) Servers(ctx context.Context, userID int64) ([]game.ServerView, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	return s.engine.ServerViews(m.Player, m.Now), nil
}

func (s *GameService) BuyServer(ctx context.Context, userID int64, typeID string) (*game.ServerView, error) {
	m, err := s.mutate(ctx, userID, "buy_server", func(p *domain.Player, now time.Time) error {
		_, err := s.engine.BuyServer(p, typeID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	views := s.engine.ServerViews(m.Player, m.Now)
	return &views[len(views)-1], nil
}

// ServerUpdate carries the optional fields of a server patch.
type ServerUpdate struct {
	Online *bool `json:"online"`
	Load   *int  `json:"load"`
}

func (s *GameService) UpdateServer(ctx context.Context, userID, serverID int64, upd ServerUpdate) (*game.ServerView, error) {
	m, err := s.mutate(ctx, userID, "update_server", func(p *domain.Player, now time.Time) error {
		if p.Server(serverID) == nil {
			return &game.NotFoundError{Kind: "server", ID: strconv.FormatInt(serverID, 10)}
		}
		if upd.Load != nil {
			if _, err := s.engine.SetServerLoad(p, serverID, *upd.Load, now); err != nil {
				return err
			}
		}
		if upd.Online != nil {
			if _, err := s.engine.SetServerOnline(p, serverID, *upd.Online, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, v := range s.engine.ServerViews(m.Player, m.Now) {
		if v.ID == serverID {
			return &v, nil
		}
	}
	return nil, game.ErrNotFound
}

func (s *GameService) DeleteServer(ctx context.Context, userID, serverID int64) error {
	_, err := s.mutate(ctx, userID, "delete_server", func(p *domain.Player, now time.Time) error {
		return s.engine.DeleteServer(p, serverID, now)
	})
	return err
}

type LearningView struct {
	Active    *game.LearningStatus `json:"active,omitempty"`
	Completed []string             `json:"completed"`
	Courses   []game.Course        `json:"courses"`
}

func (s *GameService) Learning(ctx context.Context, userID int64) (*LearningView, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	u := &m.Player.User
	view := &LearningView{
		Completed: append([]string{}, u.CompletedLearning...),
		Courses:   game.SortedCourses(),
	}
	if u.ActiveCourse != nil {
		st := game.Poll(u.ActiveCourse, m.Now)
		view.Active = &st
	}
	return view, nil
}

func (s *GameService) StartCourse(ctx context.Context, userID int64, courseID string) (*game.LearningStatus, error) {
	var st *game.LearningStatus
	_, err := s.mutate(ctx, userID, "start_course", func(p *domain.Player, now time.Time) error {
		var err error
		st, err = s.engine.StartCourse(p, courseID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (s *GameService) Subscription(ctx context.Context, userID int64) (*game.SubscriptionView, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	view := s.engine.SubscriptionView(&m.Player.User, m.Now)
	return &view, nil
}

// CheckPurchase fails if tier cannot be bought right now.
func (s *GameService) CheckPurchase(ctx context.Context, userID int64, tier domain.Tier) error {
	_, err := s.mutate(ctx, userID, "", func(p *domain.Player, now time.Time) error {
		return game.CanPurchase(&p.User, tier, now)
	})
	return err
}

func (s *GameService) GrantSubscription(ctx context.Context, userID int64, tier domain.Tier) (*game.SubscriptionView, error) {
	m, err := s.mutate(ctx, userID, "grant_subscription", func(p *domain.Player, now time.Time) error {
		return s.engine.GrantSubscription(p, tier, now)
	})
	if err != nil {
		return nil, err
	}
	metrics.SubscriptionsGranted.WithLabelValues(string(tier)).Inc()
	view := s.engine.SubscriptionView(&m.Player.User, m.Now)
	return &view, nil
}

func (s *GameService) DailyBonus(ctx context.Context, userID int64) (*game.DailyBonusView, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	view := s.engine.DailyBonusView(&m.Player.User, m.Now)
	return &view, nil
}

func (s *GameService) ClaimDailyBonus(ctx context.Context, userID int64) (*game.DailyBonusResult, error) {
	var res *game.DailyBonusResult
	_, err := s.mutate(ctx, userID, "daily_bonus", func(p *domain.Player, now time.Time) error {
		var err error
		res, err = s.engine.ClaimDailyBonus(p, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *GameService) Quests(ctx context.Context, userID int64) ([]domain.UserQuest, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	if m.Player.Quests == nil {
		return []domain.UserQuest{}, nil
	}
	return m.Player.Quests, nil
}

type ClaimResult struct {
	Reward  int64 `json:"reward"`
	Balance int64 `json:"balance"`
}

func (s *GameService) ClaimQuest(ctx context.Context, userID int64, questID string) (*ClaimResult, error) {
	res := &ClaimResult{}
	m, err := s.mutate(ctx, userID, "claim_quest", func(p *domain.Player, now time.Time) error {
		var err error
		res.Reward, err = s.engine.ClaimQuest(p, questID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Balance = m.Player.User.Balance
	return res, nil
}

func (s *GameService) Achievements(ctx context.Context, userID int64) ([]game.AchievementStatus, error) {
	m, err := s.mutate(ctx, userID, "", nil)
	if err != nil {
		return nil, err
	}
	return game.AchievementStatuses(&m.Player.User), nil
}

func (s *GameService) ClaimAchievement(ctx context.Context, userID int64, id string) (*ClaimResult, error) {
	res := &ClaimResult{}
	m, err := s.mutate(ctx, userID, "claim_achievement", func(p *domain.Player, now time.Time) error {
		var err error
		res.Reward, err = s.engine.ClaimAchievement(p, id, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Balance = m.Player.User.Balance
	return res, nil
}

func (s *GameService) Transactions(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txs, err := s.store.Transactions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}
	return txs, nil
}
