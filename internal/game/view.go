package game

import (
	"time"

	"root_tycoon/internal/domain"
)

type JobView struct {
	Job
	Cooldown      time.Duration `json:"cooldown"`
	TimeRemaining time.Duration `json:"time_remaining"`
	Available     bool          `json:"available"`
}

type ServerView struct {
	domain.Server
	Name            string  `json:"name"`
	Built           bool    `json:"built"`
	IncomePerMinute float64 `json:"income_per_minute"`
}

type SubscriptionView struct {
	Tier          domain.Tier `json:"tier"`
	VIPActive     bool        `json:"vip_active"`
	VIPExpiresAt  *time.Time  `json:"vip_expires_at,omitempty"`
	PremiumActive bool        `json:"premium_active"`
	Rules         TierRules   `json:"rules"`
}

type DailyBonusView struct {
	CanClaim    bool       `json:"can_claim"`
	Amount      int64      `json:"amount"`
	Streak      int        `json:"streak"`
	NextStreak  int        `json:"next_streak"`
	LastClaimed domain.Day `json:"last_claimed"`
	NextResetAt time.Time  `json:"next_reset_at"`
}

// Snapshot is the full state of a player at an instant.
type Snapshot struct {
	User            domain.User        `json:"user"`
	Level           int                `json:"level"`
	NextLevelAt     int64              `json:"next_level_at"`
	SlotLimit       int                `json:"slot_limit"`
	IncomePerMinute float64            `json:"income_per_minute"`
	Efficiency      float64            `json:"efficiency"`
	Subscription    SubscriptionView   `json:"subscription"`
	Learning        *LearningStatus    `json:"learning,omitempty"`
	Servers         []ServerView       `json:"servers"`
	Jobs            []JobView          `json:"jobs"`
	DailyBonus      DailyBonusView     `json:"daily_bonus"`
	Quests          []domain.UserQuest `json:"quests"`
}

func (e *Engine) JobViews(u *domain.User, now time.Time) []JobView {
	jobs := SortedJobs()
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		cd, left := JobCooldown(u, j.ID, now)
		out = append(out, JobView{
			Job:           j,
			Cooldown:      cd,
			TimeRemaining: left,
			Available:     left == 0 && LevelFor(u.Experience) >= j.RequiredLevel,
		})
	}
	return out
}

func (e *Engine) ServerViews(p *domain.Player, now time.Time) []ServerView {
	out := make([]ServerView, 0, len(p.Servers))
	for i := range p.Servers {
		s := &p.Servers[i]
		out = append(out, ServerView{
			Server:          *s,
			Name:            ServerTypes[s.Type].Name,
			Built:           s.IsBuilt(now),
			IncomePerMinute: ServerIncomePerMinute(&p.User, s, now),
		})
	}
	return out
}

func (e *Engine) SubscriptionView(u *domain.User, now time.Time) SubscriptionView {
	tier := EffectiveTier(u, now)
	return SubscriptionView{
		Tier:          tier,
		VIPActive:     IsVIPActive(u, now),
		VIPExpiresAt:  u.VIPExpiresAt,
		PremiumActive: IsPremiumActive(u),
		Rules:         TierTable[tier],
	}
}

func (e *Engine) DailyBonusView(u *domain.User, now time.Time) DailyBonusView {
	return DailyBonusView{
		CanClaim:    e.CanClaimDaily(u, now),
		Amount:      e.DailyBonusAmount(u, now),
		Streak:      u.DailyStreak,
		NextStreak:  e.NextStreak(u, now),
		LastClaimed: u.LastDailyBonus,
		NextResetAt: e.NextDayStart(now),
	}
}

// Snapshot derives the read model. It does not mutate p; callers reconcile first.
func (e *Engine) Snapshot(p *domain.Player, now time.Time) Snapshot {
	u := &p.User
	lvl := LevelFor(u.Experience)
	snap := Snapshot{
		User:            *u,
		Level:           lvl,
		NextLevelAt:     ExperienceForLevel(lvl + 1),
		SlotLimit:       e.SlotLimit(u, now),
		IncomePerMinute: IncomePerMinute(p, now),
		Efficiency:      EfficiencyMultiplier(u),
		Subscription:    e.SubscriptionView(u, now),
		Servers:         e.ServerViews(p, now),
		Jobs:            e.JobViews(u, now),
		DailyBonus:      e.DailyBonusView(u, now),
		Quests:          p.Quests,
	}
	if u.ActiveCourse != nil {
		st := Poll(u.ActiveCourse, now)
		snap.Learning = &st
	}
	if snap.Quests == nil {
		snap.Quests = []domain.UserQuest{}
	}
	return snap
}
