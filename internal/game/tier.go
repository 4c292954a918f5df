package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// TierRules are the fixed effects of a subscription tier.
type TierRules struct {
	Tier                 domain.Tier                      `json:"tier"`
	ExtraServerSlots     int                              `json:"extra_server_slots"`
	Cooldowns            map[domain.JobType]time.Duration `json:"cooldowns"`
	ExperienceMultiplier float64                          `json:"experience_multiplier"`
	DailyBonusMultiplier int64                            `json:"daily_bonus_multiplier"`
	InstantServerBuild   bool                             `json:"instant_server_build"`
	PriceCents           int64                            `json:"price_cents"`
}

var TierTable = map[domain.Tier]TierRules{
	domain.TierNone: {
		Tier: domain.TierNone,
		Cooldowns: map[domain.JobType]time.Duration{
			JobScriptFix:     3 * time.Minute,
			JobNetworkSetup:  5 * time.Minute,
			JobSecurityAudit: 7 * time.Minute,
		},
		ExperienceMultiplier: 1,
		DailyBonusMultiplier: 1,
	},
	domain.TierVIP: {
		Tier:             domain.TierVIP,
		ExtraServerSlots: 2,
		Cooldowns: map[domain.JobType]time.Duration{
			JobScriptFix:     2 * time.Minute,
			JobNetworkSetup:  4 * time.Minute,
			JobSecurityAudit: 6 * time.Minute,
		},
		ExperienceMultiplier: 1.5,
		DailyBonusMultiplier: 2,
		PriceCents:           499,
	},
	domain.TierPremium: {
		Tier:             domain.TierPremium,
		ExtraServerSlots: 5,
		Cooldowns: map[domain.JobType]time.Duration{
			JobScriptFix:     90 * time.Second,
			JobNetworkSetup:  2 * time.Minute,
			JobSecurityAudit: 5 * time.Minute,
		},
		ExperienceMultiplier: 2,
		DailyBonusMultiplier: 3,
		InstantServerBuild:   true,
		PriceCents:           1999,
	},
}

func IsVIPActive(u *domain.User, now time.Time) bool {
	return u.VIPExpiresAt != nil && now.Before(*u.VIPExpiresAt)
}

// IsPremiumActive - premium never expires once granted
func IsPremiumActive(u *domain.User) bool {
	return u.PremiumActive
}

// EffectiveTier resolves Premium > VIP > none from stored state.
func EffectiveTier(u *domain.User, now time.Time) domain.Tier {
	switch {
	case IsPremiumActive(u):
		return domain.TierPremium
	case IsVIPActive(u, now):
		return domain.TierVIP
	default:
		return domain.TierNone
	}
}

// RulesFor returns the effects currently in force for u.
func RulesFor(u *domain.User, now time.Time) TierRules {
	return TierTable[EffectiveTier(u, now)]
}

// CanPurchase checks tier exclusivity. VIP may be extended while active.
func CanPurchase(u *domain.User, tier domain.Tier, now time.Time) error {
	switch tier {
	case domain.TierVIP:
		if IsPremiumActive(u) {
			return ErrConflictingSubscription
		}
	case domain.TierPremium:
		if IsPremiumActive(u) {
			return ErrAlreadyClaimed
		}
		if IsVIPActive(u, now) {
			return ErrConflictingSubscription
		}
	default:
		return notFound("tier", tier)
	}
	return nil
}

// GrantSubscription applies a confirmed purchase. VIP extends from the later
// of now and the current expiry.
func (e *Engine) GrantSubscription(p *domain.Player, tier domain.Tier, now time.Time) error {
	if err := CanPurchase(&p.User, tier, now); err != nil {
		return err
	}

	// settle income under the old tier first
	e.AccrueIncome(p, now)

	u := &p.User
	switch tier {
	case domain.TierVIP:
		from := now
		if u.VIPExpiresAt != nil && u.VIPExpiresAt.After(now) {
			from = *u.VIPExpiresAt
		}
		exp := from.Add(e.rules.VIPDuration)
		u.VIPExpiresAt = &exp
	case domain.TierPremium:
		u.PremiumActive = true
		granted := now
		u.PremiumGrantedAt = &granted
	}
	return nil
}

// SlotLimit is the effective number of servers u may own at now.
func (e *Engine) SlotLimit(u *domain.User, now time.Time) int {
	return u.ServerLimit + RulesFor(u, now).ExtraServerSlots
}
