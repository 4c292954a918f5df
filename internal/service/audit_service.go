package service

import (
	"context"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/logger"
)

type requestInfoKey struct{}

// WithRequestInfo attaches the caller's address and user agent to ctx so
// audit entries written further down can pick them up.
func WithRequestInfo(ctx context.Context, req RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, req)
}

func requestInfoFrom(ctx context.Context) RequestInfo {
	req, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return req
}

// AuditService writes the audit trail. A failed write is logged and
// swallowed: the action it describes has already happened.
type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Record stores one audit entry for userID. Request id, IP and user agent
// are taken from ctx when present.
func (s *AuditService) Record(ctx context.Context, userID int64, action string, details map[string]interface{}) {
	if s == nil {
		return
	}
	req := requestInfoFrom(ctx)
	entry := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  domain.AuditCategoryFor(action),
		RequestID: logger.RequestID(ctx),
		Details:   details,
		IP:        req.IP,
		UserAgent: req.UserAgent,
	}
	if entry.Details == nil {
		entry.Details = map[string]interface{}{}
	}
	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		logger.WithContext(ctx).Error("audit write failed", "error", err, "action", action, "user_id", userID)
	}
}

// RecordPayment stores a payment transition together with the order fields.
func (s *AuditService) RecordPayment(ctx context.Context, p *domain.Payment, action string, extra map[string]interface{}) {
	details := map[string]interface{}{
		"order_id":     p.OrderID.String(),
		"tier":         string(p.Tier),
		"amount_cents": p.AmountCents,
		"status":       string(p.Status),
	}
	for k, v := range extra {
		details[k] = v
	}
	s.Record(ctx, p.UserID, action, details)
}
