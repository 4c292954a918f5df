// Package memstore is an in-process implementation of the repositories,
// used by tests and by STORAGE_DRIVER=memory.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
	"root_tycoon/internal/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	users    map[int64]*domain.Player
	userSeq  int64
	serverID int64
	courseID int64
	txID     int64
	auditID  int64

	ledger   map[int64][]domain.Transaction
	payments map[uuid.UUID]*domain.Payment
	chat     []domain.ChatMessage
	audit    []domain.AuditLog

	// per-user write locks, held for the whole of WithPlayer
	locks map[int64]*sync.Mutex

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:    make(map[int64]*domain.Player),
		ledger:   make(map[int64][]domain.Transaction),
		payments: make(map[uuid.UUID]*domain.Payment),
		locks:    make(map[int64]*sync.Mutex),
		now:      time.Now,
	}
}

// WithClock makes stored timestamps come from now.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.users {
		if strings.EqualFold(p.User.Email, u.Email) || strings.EqualFold(p.User.Username, u.Username) {
			return repository.ErrUserExists
		}
	}
	s.userSeq++
	u.ID = s.userSeq
	s.users[u.ID] = &domain.Player{User: cloneUser(*u)}
	s.locks[u.ID] = &sync.Mutex{}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.users {
		if strings.EqualFold(p.User.Email, email) {
			u := cloneUser(p.User)
			return &u, nil
		}
	}
	return nil, game.ErrNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.users[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	u := cloneUser(p.User)
	return &u, nil
}

// WithPlayer runs fn on a copy of the player and commits the copy if fn
// succeeds.
func (s *Store) WithPlayer(ctx context.Context, userID int64, fn func(p *domain.Player) error) error {
	s.mu.RLock()
	lock, ok := s.locks[userID]
	s.mu.RUnlock()
	if !ok {
		return game.ErrNotFound
	}
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	work := clonePlayer(s.users[userID])
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range work.Servers {
		if work.Servers[i].ID == 0 {
			s.serverID++
			work.Servers[i].ID = s.serverID
		}
	}
	if c := work.User.ActiveCourse; c != nil && c.ID == 0 {
		s.courseID++
		c.ID = s.courseID
	}
	now := s.now()
	for i := range work.Ledger {
		s.txID++
		work.Ledger[i].ID = s.txID
		work.Ledger[i].CreatedAt = now
		s.ledger[userID] = append(s.ledger[userID], work.Ledger[i])
	}

	stored := clonePlayer(work)
	stored.Ledger = nil
	s.users[userID] = stored
	return nil
}

func (s *Store) IncomeUserIDs(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for id, p := range s.users {
		for _, srv := range p.Servers {
			if srv.Online {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) Transactions(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	entries := s.ledger[userID]
	var res []*domain.Transaction
	for i := len(entries) - 1; i >= 0 && len(res) < limit; i-- {
		tx := entries[i]
		res = append(res, &tx)
	}
	return res, nil
}

func (s *Store) Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.LeaderboardEntry, 0, len(s.users))
	for _, p := range s.users {
		score := p.User.Balance
		if metric == domain.MetricExperience {
			score = p.User.Experience
		}
		res = append(res, domain.LeaderboardEntry{UserID: p.User.ID, Username: p.User.Username, Score: score})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].UserID < res[j].UserID
	})
	if len(res) > limit {
		res = res[:limit]
	}
	for i := range res {
		res[i].Rank = int64(i + 1)
	}
	return res, nil
}

func (s *Store) Stats(ctx context.Context) (*domain.GlobalStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.GlobalStats
	for _, p := range s.users {
		st.Players++
		st.TotalBalance += p.User.Balance
		for _, srv := range p.Servers {
			st.Servers++
			if srv.Online {
				st.OnlineServers++
			}
		}
	}
	return &st, nil
}
