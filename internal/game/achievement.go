package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// Achievement is a one-time milestone over lifetime counters.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int64  `json:"reward"`

	done func(u *domain.User) bool
}

// Done reports whether u reached the milestone.
func (a Achievement) Done(u *domain.User) bool {
	return a.done(u)
}

var Achievements = []Achievement{
	{
		ID: "first_job", Title: "First Ticket", Description: "Complete your first job", Reward: 200,
		done: func(u *domain.User) bool { return u.TotalJobs >= 1 },
	},
	{
		ID: "job_veteran", Title: "On Call", Description: "Complete 100 jobs", Reward: 5000,
		done: func(u *domain.User) bool { return u.TotalJobs >= 100 },
	},
	{
		ID: "first_server", Title: "Hello, World", Description: "Buy your first server", Reward: 500,
		done: func(u *domain.User) bool { return u.ServersBought >= 1 },
	},
	{
		ID: "server_farm", Title: "Server Farm", Description: "Buy 10 servers", Reward: 10000,
		done: func(u *domain.User) bool { return u.ServersBought >= 10 },
	},
	{
		ID: "earner_100k", Title: "Six Figures", Description: "Earn 100000 from servers", Reward: 10000,
		done: func(u *domain.User) bool { return u.TotalEarned >= 100000 },
	},
	{
		ID: "level_10", Title: "Senior Admin", Description: "Reach level 10", Reward: 20000,
		done: func(u *domain.User) bool { return LevelFor(u.Experience) >= 10 },
	},
}

func findAchievement(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// AchievementStatus is the per-user view of an achievement.
type AchievementStatus struct {
	Achievement
	Completed bool `json:"completed"`
	Claimed   bool `json:"claimed"`
}

// AchievementStatuses lists every achievement with its state for u.
func AchievementStatuses(u *domain.User) []AchievementStatus {
	out := make([]AchievementStatus, 0, len(Achievements))
	for _, a := range Achievements {
		out = append(out, AchievementStatus{
			Achievement: a,
			Completed:   a.Done(u),
			Claimed:     u.HasAchievement(a.ID),
		})
	}
	return out
}

// ClaimAchievement credits a reached milestone once.
func (e *Engine) ClaimAchievement(p *domain.Player, id string, now time.Time) (int64, error) {
	a, ok := findAchievement(id)
	if !ok {
		return 0, notFound("achievement", id)
	}
	u := &p.User
	if !u.TutorialCompleted {
		return 0, ErrTutorialIncomplete
	}
	if u.HasAchievement(id) {
		return 0, ErrAlreadyClaimed
	}
	if !a.Done(u) {
		return 0, ErrNotCompleted
	}

	u.ClaimedAchievements = append(u.ClaimedAchievements, id)
	u.Balance += a.Reward
	p.Record(domain.TxAchievement, a.Reward, map[string]interface{}{"achievement": id})
	return a.Reward, nil
}
