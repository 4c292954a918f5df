package domain

import "time"

// Server is a virtual server owned by exactly one user.
type Server struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Type      string    `db:"type" json:"type"`
	Online    bool      `db:"online" json:"online"`
	Load      int       `db:"load" json:"load"` // percent, 10..100
	ReadyAt   time.Time `db:"ready_at" json:"ready_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsBuilt reports whether the server finished building at now.
func (s *Server) IsBuilt(now time.Time) bool {
	return !now.Before(s.ReadyAt)
}
