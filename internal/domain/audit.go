package domain

import "time"

// AuditLog is one row of the append-only audit trail. Balance changes live in
// the ledger; the audit trail records who did what and from where.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	RequestID string                 `db:"request_id" json:"request_id,omitempty"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

const (
	AuditCategoryAuth         = "auth"
	AuditCategoryPayment      = "payment"
	AuditCategorySubscription = "subscription"
	AuditCategoryProgress     = "progress"
	AuditCategoryOther        = "other"
)

const (
	AuditActionRegister = "register"
	AuditActionLogin    = "login"

	AuditActionCheckout       = "checkout"
	AuditActionPaymentConfirm = "payment_confirm"
	AuditActionPaymentReject  = "payment_reject"

	AuditActionSubscriptionGrant = "subscription_grant"

	AuditActionLearningComplete = "learning_complete"
)

var auditCategories = map[string]string{
	AuditActionRegister:          AuditCategoryAuth,
	AuditActionLogin:             AuditCategoryAuth,
	AuditActionCheckout:          AuditCategoryPayment,
	AuditActionPaymentConfirm:    AuditCategoryPayment,
	AuditActionPaymentReject:     AuditCategoryPayment,
	AuditActionSubscriptionGrant: AuditCategorySubscription,
	AuditActionLearningComplete:  AuditCategoryProgress,
}

// AuditCategoryFor returns the category an action is filed under.
func AuditCategoryFor(action string) string {
	if c, ok := auditCategories[action]; ok {
		return c
	}
	return AuditCategoryOther
}
