package memstore

import (
	"sort"
	"time"

	"root_tycoon/internal/domain"
)

func cloneUser(u domain.User) domain.User {
	out := u
	out.JobLastCompleted = make(map[domain.JobType]time.Time, len(u.JobLastCompleted))
	for k, v := range u.JobLastCompleted {
		out.JobLastCompleted[k] = v
	}
	out.CompletedLearning = append([]string(nil), u.CompletedLearning...)
	out.ClaimedAchievements = append([]string(nil), u.ClaimedAchievements...)
	out.VIPExpiresAt = cloneTime(u.VIPExpiresAt)
	out.PremiumGrantedAt = cloneTime(u.PremiumGrantedAt)
	if u.ActiveCourse != nil {
		c := *u.ActiveCourse
		out.ActiveCourse = &c
	}
	return out
}

func clonePlayer(p *domain.Player) *domain.Player {
	out := &domain.Player{
		User:    cloneUser(p.User),
		Servers: append([]domain.Server(nil), p.Servers...),
		Quests:  make([]domain.UserQuest, len(p.Quests)),
		Ledger:  append([]domain.Transaction(nil), p.Ledger...),
	}
	for i, q := range p.Quests {
		q.CompletedAt = cloneTime(q.CompletedAt)
		q.ClaimedAt = cloneTime(q.ClaimedAt)
		out.Quests[i] = q
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func sortPayments(ps []domain.Payment) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
}
