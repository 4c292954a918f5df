package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// CanClaimDaily reports whether the logical day of now differs from the
// day of the last claim.
func (e *Engine) CanClaimDaily(u *domain.User, now time.Time) bool {
	return e.Day(now) != u.LastDailyBonus
}

// DailyBonusAmount is the base bonus scaled by the tier multiplier.
func (e *Engine) DailyBonusAmount(u *domain.User, now time.Time) int64 {
	return e.rules.DailyBonusBase * RulesFor(u, now).DailyBonusMultiplier
}

// NextStreak is the streak a claim at now would produce.
func (e *Engine) NextStreak(u *domain.User, now time.Time) int {
	if !u.LastDailyBonus.IsZero() && e.Day(now) == u.LastDailyBonus.AddDays(1) {
		return u.DailyStreak + 1
	}
	return 1
}

type DailyBonusResult struct {
	Amount int64      `json:"amount"`
	Streak int        `json:"streak"`
	Day    domain.Day `json:"day"`
}

// ClaimDailyBonus credits the bonus once per logical day.
func (e *Engine) ClaimDailyBonus(p *domain.Player, now time.Time) (*DailyBonusResult, error) {
	u := &p.User
	if !e.CanClaimDaily(u, now) {
		return nil, ErrAlreadyClaimed
	}

	amount := e.DailyBonusAmount(u, now)
	u.DailyStreak = e.NextStreak(u, now)
	u.LastDailyBonus = e.Day(now)
	u.Balance += amount
	p.Record(domain.TxDailyBonus, amount, map[string]interface{}{"streak": u.DailyStreak})

	return &DailyBonusResult{Amount: amount, Streak: u.DailyStreak, Day: u.LastDailyBonus}, nil
}
