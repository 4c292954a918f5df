package repository

import (
	"context"

	"root_tycoon/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateMessage сохраняет сообщение чата
func (r *ChatRepository) CreateMessage(ctx context.Context, m *domain.ChatMessage) error {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO chat_messages (id, user_id, username, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, m.UserID, m.Username, m.Text, m.CreatedAt,
	)
	return err
}

// RecentMessages returns the last limit messages in chronological order.
func (r *ChatRepository) RecentMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, username, text, created_at FROM (
			SELECT id, user_id, username, text, created_at
			FROM chat_messages
			ORDER BY created_at DESC
			LIMIT $1
		 ) recent
		 ORDER BY created_at ASC`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var id uuid.UUID
		if err := rows.Scan(&id, &m.UserID, &m.Username, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.ID = id.String()
		res = append(res, m)
	}
	return res, rows.Err()
}
