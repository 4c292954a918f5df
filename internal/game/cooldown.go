package game

import (
	"math"
	"time"

	"root_tycoon/internal/domain"
)

// CanStart reports whether now is at or past last + cooldown.
func CanStart(last time.Time, cooldown time.Duration, now time.Time) bool {
	return !now.Before(last.Add(cooldown))
}

// Remaining is max(0, last + cooldown - now).
func Remaining(last time.Time, cooldown time.Duration, now time.Time) time.Duration {
	left := last.Add(cooldown).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// CooldownFor looks up the job cooldown in the tier table.
func CooldownFor(job domain.JobType, tier domain.Tier) time.Duration {
	return TierTable[tier].Cooldowns[job]
}

// JobCooldown returns the cooldown in force for u and the time left on it.
func JobCooldown(u *domain.User, job domain.JobType, now time.Time) (cooldown, remaining time.Duration) {
	cooldown = CooldownFor(job, EffectiveTier(u, now))
	last, ok := u.JobLastCompleted[job]
	if !ok {
		return cooldown, 0
	}
	return cooldown, Remaining(last, cooldown, now)
}

// JobResult is what a started job credited.
type JobResult struct {
	Job        domain.JobType `json:"job"`
	Reward     int64          `json:"reward"`
	Experience int64          `json:"experience"`
	NextAt     time.Time      `json:"next_at"`
	LevelUp    bool           `json:"level_up"`
}

// StartJob gates on cooldown, then records now and credits the reward.
func (e *Engine) StartJob(p *domain.Player, jobID domain.JobType, now time.Time) (*JobResult, error) {
	job, ok := Jobs[jobID]
	if !ok {
		return nil, notFound("job", jobID)
	}

	u := &p.User
	if lvl := LevelFor(u.Experience); lvl < job.RequiredLevel {
		return nil, &LevelError{Required: job.RequiredLevel, Current: lvl}
	}

	cooldown, remaining := JobCooldown(u, jobID, now)
	if remaining > 0 {
		return nil, &CooldownError{Job: string(jobID), Remaining: remaining}
	}

	if u.JobLastCompleted == nil {
		u.JobLastCompleted = map[domain.JobType]time.Time{}
	}
	u.JobLastCompleted[jobID] = now

	levelBefore := LevelFor(u.Experience)
	xp := int64(math.Round(float64(job.Experience) * RulesFor(u, now).ExperienceMultiplier))
	u.Experience += xp
	u.Balance += job.Reward
	u.TotalJobs++
	p.Record(domain.TxJob, job.Reward, map[string]interface{}{"job": string(jobID)})

	advanceQuests(p, domain.RequirementJob, 1, now)

	return &JobResult{
		Job:        jobID,
		Reward:     job.Reward,
		Experience: xp,
		NextAt:     now.Add(cooldown),
		LevelUp:    LevelFor(u.Experience) > levelBefore,
	}, nil
}
