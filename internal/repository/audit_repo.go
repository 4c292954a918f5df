package repository

import (
	"context"
	"encoding/json"

	"root_tycoon/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `id, user_id, action, category, request_id, details, ip, user_agent, created_at`

// AuditRepository appends to and reads the audit_logs table.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) CreateAuditLog(ctx context.Context, entry *domain.AuditLog) error {
	details := []byte("{}")
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = b
	}
	return r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (user_id, action, category, request_id, details, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, entry.UserID, entry.Action, entry.Category, entry.RequestID, details, entry.IP, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// AuditLogsByUser returns up to limit entries for userID, newest first.
func (r *AuditRepository) AuditLogsByUser(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	rows, err := r.db.Query(ctx, `SELECT `+auditColumns+`
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AuditLog
	for rows.Next() {
		var (
			e   domain.AuditLog
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Category, &e.RequestID, &raw, &e.IP, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &e.Details)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
