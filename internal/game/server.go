package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// BuyServer debits the price and adds a server that becomes productive after
// its build time. The new server has ID 0 until the store persists it.
func (e *Engine) BuyServer(p *domain.Player, typeID string, now time.Time) (*domain.Server, error) {
	st, ok := ServerTypes[typeID]
	if !ok {
		return nil, notFound("server type", typeID)
	}

	u := &p.User
	if lvl := LevelFor(u.Experience); lvl < st.RequiredLevel {
		return nil, &LevelError{Required: st.RequiredLevel, Current: lvl}
	}
	if st.RequiredCourse != "" && !u.HasCompleted(st.RequiredCourse) {
		return nil, ErrLocked
	}
	if limit := e.SlotLimit(u, now); len(p.Servers) >= limit {
		return nil, &SlotError{Limit: limit}
	}
	if u.Balance < st.Price {
		return nil, needFunds(st.Price, u.Balance)
	}

	e.AccrueIncome(p, now)

	ready := now.Add(st.BuildTime)
	if RulesFor(u, now).InstantServerBuild {
		ready = now
	}

	u.Balance -= st.Price
	u.ServersBought++
	p.Record(domain.TxServerPurchase, -st.Price, map[string]interface{}{"server_type": typeID})

	p.Servers = append(p.Servers, domain.Server{
		UserID:    u.ID,
		Type:      typeID,
		Online:    true,
		Load:      DefaultLoad,
		ReadyAt:   ready,
		CreatedAt: now,
	})
	return &p.Servers[len(p.Servers)-1], nil
}

// SetServerOnline toggles a server. Income up to now is settled at the old rate.
func (e *Engine) SetServerOnline(p *domain.Player, serverID int64, online bool, now time.Time) (*domain.Server, error) {
	s := p.Server(serverID)
	if s == nil {
		return nil, notFound("server", serverID)
	}
	e.AccrueIncome(p, now)
	s.Online = online
	return s, nil
}

// SetServerLoad changes the load of a server within [MinLoad, MaxLoad].
func (e *Engine) SetServerLoad(p *domain.Player, serverID int64, load int, now time.Time) (*domain.Server, error) {
	if load < MinLoad || load > MaxLoad {
		return nil, ErrInvalidLoad
	}
	s := p.Server(serverID)
	if s == nil {
		return nil, notFound("server", serverID)
	}
	e.AccrueIncome(p, now)
	s.Load = load
	return s, nil
}

// DeleteServer removes a server without refund.
func (e *Engine) DeleteServer(p *domain.Player, serverID int64, now time.Time) error {
	idx := -1
	for i := range p.Servers {
		if p.Servers[i].ID == serverID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return notFound("server", serverID)
	}
	e.AccrueIncome(p, now)
	p.Servers = append(p.Servers[:idx], p.Servers[idx+1:]...)
	return nil
}
