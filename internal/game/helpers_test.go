package game

import (
	"testing"
	"time"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/domain"
)

var t0 = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultRules(), clock.MustLoadZone("Europe/Berlin"))
}

func newTestPlayer(e *Engine, now time.Time) *domain.Player {
	u := e.NewUser("neo@example.com", "neo", "hash", now)
	u.ID = 1
	return &domain.Player{User: u}
}

// addServer appends a built, online server with the next free id.
func addServer(p *domain.Player, typeID string, load int, readyAt time.Time) *domain.Server {
	p.Servers = append(p.Servers, domain.Server{
		ID:      int64(len(p.Servers) + 1),
		UserID:  p.User.ID,
		Type:    typeID,
		Online:  true,
		Load:    load,
		ReadyAt: readyAt,
	})
	return &p.Servers[len(p.Servers)-1]
}

func berlin(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}
