package service

import (
	"context"

	"root_tycoon/internal/domain"

	"github.com/google/uuid"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// PlayerStore serializes writes to one player. WithPlayer commits the
// changes fn makes, or nothing if fn fails.
type PlayerStore interface {
	WithPlayer(ctx context.Context, userID int64, fn func(p *domain.Player) error) error
	IncomeUserIDs(ctx context.Context) ([]int64, error)
	Transactions(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error)
}

type RankingStore interface {
	Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error)
	Stats(ctx context.Context) (*domain.GlobalStats, error)
}

type PaymentStore interface {
	CreatePayment(ctx context.Context, p *domain.Payment) error
	GetPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
	ClaimPayment(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error)
	SetPaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error
	PaymentsByUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error)
}

type ChatStore interface {
	CreateMessage(ctx context.Context, m *domain.ChatMessage) error
	RecentMessages(ctx context.Context, limit int) ([]domain.ChatMessage, error)
}

type AuditStore interface {
	CreateAuditLog(ctx context.Context, log *domain.AuditLog) error
}

// LeaderboardCache is the optional redis-backed ranking.
type LeaderboardCache interface {
	Update(ctx context.Context, u *domain.User) error
	Set(ctx context.Context, metric domain.LeaderboardMetric, e domain.LeaderboardEntry) error
	Top(ctx context.Context, metric domain.LeaderboardMetric, limit int) ([]domain.LeaderboardEntry, error)
	Rank(ctx context.Context, metric domain.LeaderboardMetric, userID int64) (*domain.LeaderboardEntry, error)
}
