package game

import (
	"math"
	"time"

	"root_tycoon/internal/domain"
)

const (
	MinLoad = 10
	MaxLoad = 100
	// DefaultLoad yields exactly the base rate.
	DefaultLoad = 50
)

// floor tolerance for float error in per-minute products
const accrualEpsilon = 1e-9

// EffectiveIncomePerMinute scales the base rate by load: 50% is the base
// rate, 100% is 1.5x, 10% is 0.6x.
func EffectiveIncomePerMinute(base float64, load int) float64 {
	return base * (1 + float64(load-DefaultLoad)/100)
}

// EfficiencyMultiplier sums the boosts of completed efficiency courses.
func EfficiencyMultiplier(u *domain.User) float64 {
	pct := 0
	for _, id := range u.CompletedLearning {
		if c, ok := Courses[id]; ok && c.Reward == domain.RewardEfficiency {
			pct += c.Amount
		}
	}
	return 1 + float64(pct)/100
}

// ServerIncomePerMinute is what s earns per minute at now, including
// efficiency. Offline or unbuilt servers earn nothing.
func ServerIncomePerMinute(u *domain.User, s *domain.Server, now time.Time) float64 {
	if !s.Online || !s.IsBuilt(now) {
		return 0
	}
	st, ok := ServerTypes[s.Type]
	if !ok {
		return 0
	}
	return EffectiveIncomePerMinute(st.IncomePerMinute, s.Load) * EfficiencyMultiplier(u)
}

// IncomePerMinute is the total current rate of all servers of p.
func IncomePerMinute(p *domain.Player, now time.Time) float64 {
	var total float64
	for i := range p.Servers {
		total += ServerIncomePerMinute(&p.User, &p.Servers[i], now)
	}
	return total
}

// AccrueIncome credits income earned between LastIncomeUpdate and now and
// advances LastIncomeUpdate. Whole units are credited; the fraction is
// carried to the next call. Zero elapsed time credits zero. Income is
// tracked in TotalEarned rather than the ledger, since every poll accrues.
func (e *Engine) AccrueIncome(p *domain.Player, now time.Time) int64 {
	u := &p.User
	if u.LastIncomeUpdate.IsZero() {
		u.LastIncomeUpdate = now
		return 0
	}
	if !now.After(u.LastIncomeUpdate) {
		return 0
	}

	mult := EfficiencyMultiplier(u)
	total := u.IncomeCarry
	for i := range p.Servers {
		s := &p.Servers[i]
		if !s.Online {
			continue
		}
		st, ok := ServerTypes[s.Type]
		if !ok {
			continue
		}
		from := u.LastIncomeUpdate
		if s.ReadyAt.After(from) {
			from = s.ReadyAt
		}
		if !now.After(from) {
			continue
		}
		minutes := float64(now.Sub(from)) / float64(time.Minute)
		total += EffectiveIncomePerMinute(st.IncomePerMinute, s.Load) * mult * minutes
	}

	credited := int64(math.Floor(total + accrualEpsilon))
	carry := total - float64(credited)
	if carry < 0 {
		carry = 0
	}
	u.IncomeCarry = carry
	u.LastIncomeUpdate = now

	if credited > 0 {
		u.Balance += credited
		u.TotalEarned += credited
		advanceQuests(p, domain.RequirementIncome, credited, now)
	}
	return credited
}
