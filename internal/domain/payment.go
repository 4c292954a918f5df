package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks a subscription order through the gateway webhook.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRejected   PaymentStatus = "rejected"
	PaymentFailed     PaymentStatus = "failed"
)

// Payment is a subscription order created at checkout.
type Payment struct {
	OrderID     uuid.UUID     `db:"order_id" json:"order_id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	Tier        Tier          `db:"tier" json:"tier"`
	AmountCents int64         `db:"amount_cents" json:"amount_cents"`
	Currency    string        `db:"currency" json:"currency"`
	Status      PaymentStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}
