package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"
	"root_tycoon/internal/logger"

	"github.com/google/uuid"
)

const PaymentCurrency = "EUR"

// WebhookEvent is the body the payment gateway posts once an order settles.
type WebhookEvent struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Status  string    `json:"status" binding:"required"`
}

// WebhookResult tells the gateway what happened to the order.
type WebhookResult struct {
	OrderID uuid.UUID            `json:"order_id"`
	Status  domain.PaymentStatus `json:"status"`
	// Duplicate is set when the order was already handled.
	Duplicate bool `json:"duplicate,omitempty"`
}

type PaymentService struct {
	payments PaymentStore
	game     *GameService
	audit    *AuditService
	clock    clock.Clock
	secret   []byte
	log      *slog.Logger
}

func NewPaymentService(payments PaymentStore, gs *GameService, audit *AuditService, clk clock.Clock, webhookSecret string) *PaymentService {
	return &PaymentService{
		payments: payments,
		game:     gs,
		audit:    audit,
		clock:    clk,
		secret:   []byte(webhookSecret),
		log:      logger.Component("payments"),
	}
}

// Checkout validates that tier can be bought and creates a pending order.
func (s *PaymentService) Checkout(ctx context.Context, userID int64, tier domain.Tier) (*domain.Payment, error) {
	rules, ok := game.TierTable[tier]
	if !ok || tier == domain.TierNone {
		return nil, &game.NotFoundError{Kind: "tier", ID: string(tier)}
	}
	if err := s.game.CheckPurchase(ctx, userID, tier); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &domain.Payment{
		OrderID:     uuid.New(),
		UserID:      userID,
		Tier:        tier,
		AmountCents: rules.PriceCents,
		Currency:    PaymentCurrency,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.payments.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.audit.RecordPayment(ctx, p, domain.AuditActionCheckout, nil)
	s.log.Info("checkout created", "user_id", userID, "order_id", p.OrderID, "tier", tier)
	return p, nil
}

// Sign returns the hex HMAC-SHA256 of body under the webhook secret.
func (s *PaymentService) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *PaymentService) VerifySignature(body []byte, signature string) error {
	if len(s.secret) == 0 {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// HandleWebhook settles an order at most once. A rule violation at grant
// time fails the order; an infrastructure error puts it back to pending so
// the gateway retry can pick it up again.
func (s *PaymentService) HandleWebhook(ctx context.Context, ev WebhookEvent) (*WebhookResult, error) {
	p, err := s.payments.ClaimPayment(ctx, ev.OrderID)
	if errors.Is(err, game.ErrAlreadyClaimed) {
		existing, gerr := s.payments.GetPayment(ctx, ev.OrderID)
		if gerr != nil {
			return nil, gerr
		}
		return &WebhookResult{OrderID: ev.OrderID, Status: existing.Status, Duplicate: true}, nil
	}
	if err != nil {
		return nil, err
	}

	if ev.Status != string(domain.PaymentPaid) {
		if err := s.payments.SetPaymentStatus(ctx, p.OrderID, domain.PaymentRejected); err != nil {
			return nil, err
		}
		p.Status = domain.PaymentRejected
		s.audit.RecordPayment(ctx, p, domain.AuditActionPaymentReject, map[string]interface{}{"gateway_status": ev.Status})
		return &WebhookResult{OrderID: p.OrderID, Status: p.Status}, nil
	}

	view, err := s.game.GrantSubscription(ctx, p.UserID, p.Tier)
	if err != nil {
		if game.IsRuleError(err) {
			s.log.Warn("subscription grant refused", "order_id", p.OrderID, "user_id", p.UserID, "error", err)
			if serr := s.payments.SetPaymentStatus(ctx, p.OrderID, domain.PaymentFailed); serr != nil {
				return nil, serr
			}
			p.Status = domain.PaymentFailed
			s.audit.RecordPayment(ctx, p, domain.AuditActionPaymentReject, map[string]interface{}{"reason": err.Error()})
			return &WebhookResult{OrderID: p.OrderID, Status: p.Status}, nil
		}
		if serr := s.payments.SetPaymentStatus(ctx, p.OrderID, domain.PaymentPending); serr != nil {
			s.log.Error("failed to release payment", "order_id", p.OrderID, "error", serr)
		}
		return nil, fmt.Errorf("grant subscription: %w", err)
	}

	if err := s.payments.SetPaymentStatus(ctx, p.OrderID, domain.PaymentPaid); err != nil {
		return nil, err
	}
	p.Status = domain.PaymentPaid

	s.audit.RecordPayment(ctx, p, domain.AuditActionPaymentConfirm, nil)
	grant := map[string]interface{}{"tier": string(p.Tier), "order_id": p.OrderID.String()}
	if view.VIPExpiresAt != nil {
		grant["vip_expires_at"] = view.VIPExpiresAt
	}
	s.audit.Record(ctx, p.UserID, domain.AuditActionSubscriptionGrant, grant)
	s.log.Info("subscription granted", "user_id", p.UserID, "tier", p.Tier, "order_id", p.OrderID)
	return &WebhookResult{OrderID: p.OrderID, Status: p.Status}, nil
}

func (s *PaymentService) Payments(ctx context.Context, userID int64) ([]domain.Payment, error) {
	ps, err := s.payments.PaymentsByUser(ctx, userID, 50)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []domain.Payment{}
	}
	return ps, nil
}
