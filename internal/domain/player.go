package domain

// Player is the per-user aggregate loaded and saved atomically.
// Ledger holds balance movements produced during the current mutation;
// the store writes them in the same transaction and clears the slice.
type Player struct {
	User    User
	Servers []Server
	Quests  []UserQuest
	Ledger  []Transaction
}

// Record appends a ledger entry for a balance change.
func (p *Player) Record(txType string, amount int64, meta map[string]interface{}) {
	if amount == 0 {
		return
	}
	p.Ledger = append(p.Ledger, Transaction{
		UserID: p.User.ID,
		Type:   txType,
		Amount: amount,
		Meta:   meta,
	})
}

// Server returns the owned server with id, or nil.
func (p *Player) Server(id int64) *Server {
	for i := range p.Servers {
		if p.Servers[i].ID == id {
			return &p.Servers[i]
		}
	}
	return nil
}

// Quest returns the quest instance with id, or nil.
func (p *Player) Quest(id string) *UserQuest {
	for i := range p.Quests {
		if p.Quests[i].ID == id {
			return &p.Quests[i]
		}
	}
	return nil
}
