package memstore

import (
	"context"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"

	"github.com/google/uuid"
)

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.payments[p.OrderID] = &cp
	return nil
}

func (s *Store) GetPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[orderID]
	if !ok {
		return nil, game.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) ClaimPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[orderID]
	if !ok {
		return nil, game.ErrNotFound
	}
	if p.Status != domain.PaymentPending {
		return nil, game.ErrAlreadyClaimed
	}
	p.Status = domain.PaymentProcessing
	p.UpdatedAt = s.now()
	cp := *p
	return &cp, nil
}

func (s *Store) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[orderID]
	if !ok {
		return game.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = s.now()
	return nil
}

func (s *Store) PaymentsByUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []domain.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			res = append(res, *p)
		}
	}
	sortPayments(res)
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *Store) CreateMessage(ctx context.Context, m *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, *m)
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 50
	}
	start := len(s.chat) - limit
	if start < 0 {
		start = 0
	}
	return append([]domain.ChatMessage(nil), s.chat[start:]...), nil
}

func (s *Store) CreateAuditLog(ctx context.Context, log *domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditID++
	log.ID = s.auditID
	log.CreatedAt = s.now()
	s.audit = append(s.audit, *log)
	return nil
}

func (s *Store) AuditLogsByUser(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*domain.AuditLog
	for i := len(s.audit) - 1; i >= 0 && len(res) < limit; i-- {
		if s.audit[i].UserID == userID {
			entry := s.audit[i]
			res = append(res, &entry)
		}
	}
	return res, nil
}
