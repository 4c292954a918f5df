package game

import (
	"errors"
	"testing"
	"time"

	"root_tycoon/internal/domain"
)

func TestVIPExpiryIsDerivedFromTimestamp(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)

	expired := t0.Add(-time.Millisecond)
	p.User.VIPExpiresAt = &expired
	if tier := EffectiveTier(&p.User, t0); tier != domain.TierNone {
		t.Fatalf("expired vip resolved to %s", tier)
	}
	if cd, _ := JobCooldown(&p.User, JobScriptFix, t0); cd != 3*time.Minute {
		t.Fatalf("expired vip must use base cooldown, got %v", cd)
	}
	if got := e.SlotLimit(&p.User, t0); got != 3 {
		t.Fatalf("slot limit = %d", got)
	}

	active := t0.Add(time.Millisecond)
	p.User.VIPExpiresAt = &active
	if tier := EffectiveTier(&p.User, t0); tier != domain.TierVIP {
		t.Fatalf("active vip resolved to %s", tier)
	}
	if got := e.SlotLimit(&p.User, t0); got != 5 {
		t.Fatalf("vip slot limit = %d", got)
	}
	// exactly at expiry it is over
	if tier := EffectiveTier(&p.User, active); tier != domain.TierNone {
		t.Fatalf("vip active at its expiry instant")
	}
}

func TestPremiumOutranksVIP(t *testing.T) {
	u := domain.User{PremiumActive: true}
	exp := t0.Add(time.Hour)
	u.VIPExpiresAt = &exp
	if tier := EffectiveTier(&u, t0); tier != domain.TierPremium {
		t.Fatalf("got %s", tier)
	}
}

func TestGrantSubscriptionConflicts(t *testing.T) {
	e := newTestEngine()

	p := newTestPlayer(e, t0)
	if err := e.GrantSubscription(p, domain.TierVIP, t0); err != nil {
		t.Fatal(err)
	}
	if err := e.GrantSubscription(p, domain.TierPremium, t0); !errors.Is(err, ErrConflictingSubscription) {
		t.Fatalf("premium over vip: %v", err)
	}

	q := newTestPlayer(e, t0)
	if err := e.GrantSubscription(q, domain.TierPremium, t0); err != nil {
		t.Fatal(err)
	}
	if err := e.GrantSubscription(q, domain.TierVIP, t0); !errors.Is(err, ErrConflictingSubscription) {
		t.Fatalf("vip over premium: %v", err)
	}
	if err := e.GrantSubscription(q, domain.TierPremium, t0); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("second premium: %v", err)
	}
	if err := e.GrantSubscription(q, "gold", t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown tier: %v", err)
	}
}

func TestGrantVIPExtends(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	month := 30 * 24 * time.Hour

	if err := e.GrantSubscription(p, domain.TierVIP, t0); err != nil {
		t.Fatal(err)
	}
	if !p.User.VIPExpiresAt.Equal(t0.Add(month)) {
		t.Fatalf("expires %v", p.User.VIPExpiresAt)
	}

	later := t0.Add(10 * 24 * time.Hour)
	if err := e.GrantSubscription(p, domain.TierVIP, later); err != nil {
		t.Fatal(err)
	}
	if !p.User.VIPExpiresAt.Equal(t0.Add(2 * month)) {
		t.Fatalf("extension should stack on current expiry, got %v", p.User.VIPExpiresAt)
	}

	// once lapsed, a new grant starts from now
	lapsed := t0.Add(3 * month)
	if err := e.GrantSubscription(p, domain.TierVIP, lapsed); err != nil {
		t.Fatal(err)
	}
	if !p.User.VIPExpiresAt.Equal(lapsed.Add(month)) {
		t.Fatalf("lapsed grant expires %v", p.User.VIPExpiresAt)
	}
}

func TestGrantSettlesIncomeFirst(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "basic", 50, t0)

	if err := e.GrantSubscription(p, domain.TierVIP, t0.Add(2*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if p.User.TotalEarned != 100 || !p.User.LastIncomeUpdate.Equal(t0.Add(2*time.Minute)) {
		t.Fatalf("income not settled: earned=%d last=%v", p.User.TotalEarned, p.User.LastIncomeUpdate)
	}
}
