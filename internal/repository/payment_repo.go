package repository

import (
	"context"
	"errors"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/game"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `order_id, user_id, tier, amount_cents, currency, status, created_at, updated_at`

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment stores a new pending order
func (r *PaymentRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO payments (order_id, user_id, tier, amount_cents, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, p.OrderID, p.UserID, string(p.Tier), p.AmountCents, p.Currency, string(p.Status)).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PaymentRepository) GetPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID))
}

// ClaimPayment moves a pending order to processing. Only one caller wins;
// the others get game.ErrAlreadyClaimed.
func (r *PaymentRepository) ClaimPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `
		UPDATE payments SET status = 'processing', updated_at = now()
		WHERE order_id = $1 AND status = 'pending'
		RETURNING `+paymentColumns, orderID))
	if errors.Is(err, game.ErrNotFound) {
		if _, getErr := r.GetPayment(ctx, orderID); getErr != nil {
			return nil, getErr
		}
		return nil, game.ErrAlreadyClaimed
	}
	return p, err
}

func (r *PaymentRepository) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error {
	_, err := r.db.Exec(ctx, `
		UPDATE payments SET status = $2, updated_at = now() WHERE order_id = $1
	`, orderID, string(status))
	return err
}

// PaymentsByUser returns orders of a user, newest first
func (r *PaymentRepository) PaymentsByUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var tier, status string
	err := row.Scan(&p.OrderID, &p.UserID, &tier, &p.AmountCents, &p.Currency, &status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, game.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Tier = domain.Tier(tier)
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
