package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// QuestInstanceID builds the per-day id of a quest template.
func QuestInstanceID(questID string, day domain.Day) string {
	return questID + "_" + day.String()
}

// EnsureDailyQuests replaces the quest set when a new logical day started
// since the last reset. Quests unlock with the tutorial.
func (e *Engine) EnsureDailyQuests(p *domain.Player, now time.Time) bool {
	u := &p.User
	if !u.TutorialCompleted {
		return false
	}
	today := e.Day(now)
	if u.LastQuestReset == today && len(p.Quests) > 0 {
		return false
	}

	quests := make([]domain.UserQuest, 0, len(DailyQuests))
	for _, t := range DailyQuests {
		quests = append(quests, domain.UserQuest{
			ID:          QuestInstanceID(t.ID, today),
			UserID:      u.ID,
			QuestID:     t.ID,
			Day:         today,
			Requirement: t.Requirement,
			Target:      t.Target,
			Reward:      t.Reward,
		})
	}
	p.Quests = quests
	u.LastQuestReset = today
	return true
}

// advanceQuests adds amount to every open quest with requirement req.
func advanceQuests(p *domain.Player, req domain.RequirementType, amount int64, now time.Time) {
	for i := range p.Quests {
		q := &p.Quests[i]
		if q.Requirement != req || q.Completed {
			continue
		}
		q.Progress += amount
		if q.Progress >= q.Target {
			q.Progress = q.Target
			q.Completed = true
			at := now
			q.CompletedAt = &at
		}
	}
}

// ClaimQuest credits a completed quest exactly once.
func (e *Engine) ClaimQuest(p *domain.Player, instanceID string, now time.Time) (int64, error) {
	q := p.Quest(instanceID)
	if q == nil {
		return 0, notFound("quest", instanceID)
	}
	if q.Claimed {
		return 0, ErrAlreadyClaimed
	}
	if !q.Completed {
		return 0, ErrNotCompleted
	}

	q.Claimed = true
	at := now
	q.ClaimedAt = &at
	p.User.Balance += q.Reward
	p.Record(domain.TxQuestReward, q.Reward, map[string]interface{}{"quest": q.ID})
	return q.Reward, nil
}
