package game

import (
	"errors"
	"testing"
	"time"

	"root_tycoon/internal/domain"
)

func TestCanStartAndRemaining(t *testing.T) {
	last := t0
	cd := 3 * time.Minute
	if CanStart(last, cd, t0.Add(cd-time.Millisecond)) {
		t.Fatal("should not start before cooldown elapsed")
	}
	if !CanStart(last, cd, t0.Add(cd)) {
		t.Fatal("should start exactly at last + cooldown")
	}
	if got := Remaining(last, cd, t0.Add(time.Minute)); got != 2*time.Minute {
		t.Fatalf("remaining = %v", got)
	}
	if got := Remaining(last, cd, t0.Add(time.Hour)); got != 0 {
		t.Fatalf("remaining after expiry = %v", got)
	}
}

func TestCooldownTables(t *testing.T) {
	cases := []struct {
		tier domain.Tier
		job  domain.JobType
		want time.Duration
	}{
		{domain.TierNone, JobScriptFix, 3 * time.Minute},
		{domain.TierNone, JobNetworkSetup, 5 * time.Minute},
		{domain.TierNone, JobSecurityAudit, 7 * time.Minute},
		{domain.TierVIP, JobScriptFix, 2 * time.Minute},
		{domain.TierVIP, JobNetworkSetup, 4 * time.Minute},
		{domain.TierVIP, JobSecurityAudit, 6 * time.Minute},
		{domain.TierPremium, JobScriptFix, 90 * time.Second},
		{domain.TierPremium, JobNetworkSetup, 2 * time.Minute},
		{domain.TierPremium, JobSecurityAudit, 5 * time.Minute},
	}
	for _, c := range cases {
		if got := CooldownFor(c.job, c.tier); got != c.want {
			t.Errorf("%s/%s: got %v want %v", c.tier, c.job, got, c.want)
		}
	}
}

func TestStartJobCooldown(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	start := p.User.Balance

	res, err := e.StartJob(p, JobScriptFix, t0)
	if err != nil {
		t.Fatalf("start job: %v", err)
	}
	if res.Reward != 100 || p.User.Balance != start+100 {
		t.Fatalf("reward not credited: %+v balance=%d", res, p.User.Balance)
	}
	if !res.NextAt.Equal(t0.Add(3 * time.Minute)) {
		t.Fatalf("next at = %v", res.NextAt)
	}

	_, err = e.StartJob(p, JobScriptFix, t0.Add(2*time.Minute+59*time.Second))
	if !errors.Is(err, ErrCooldownActive) {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	var cdErr *CooldownError
	if !errors.As(err, &cdErr) || cdErr.Remaining != time.Second {
		t.Fatalf("expected 1s remaining, got %+v", cdErr)
	}
	if p.User.Balance != start+100 {
		t.Fatalf("failed start changed balance: %d", p.User.Balance)
	}

	if _, err := e.StartJob(p, JobScriptFix, t0.Add(3*time.Minute)); err != nil {
		t.Fatalf("start after cooldown: %v", err)
	}
	if len(p.Ledger) != 2 || p.Ledger[0].Type != domain.TxJob {
		t.Fatalf("ledger = %+v", p.Ledger)
	}
}

func TestStartJobUsesTierCooldown(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	exp := t0.Add(24 * time.Hour)
	p.User.VIPExpiresAt = &exp

	if _, err := e.StartJob(p, JobScriptFix, t0); err != nil {
		t.Fatal(err)
	}
	if _, err := e.StartJob(p, JobScriptFix, t0.Add(2*time.Minute)); err != nil {
		t.Fatalf("vip cooldown should be 2m: %v", err)
	}
	// 10 xp * 1.5 per job
	if p.User.Experience != 30 {
		t.Fatalf("experience = %d, want 30", p.User.Experience)
	}
}

func TestStartJobLevelAndUnknown(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)

	_, err := e.StartJob(p, JobSecurityAudit, t0)
	var lvlErr *LevelError
	if !errors.As(err, &lvlErr) || lvlErr.Required != 4 || lvlErr.Current != 1 {
		t.Fatalf("expected level error, got %v", err)
	}
	if !errors.Is(err, ErrLevelTooLow) {
		t.Fatalf("level error must match ErrLevelTooLow")
	}

	_, err = e.StartJob(p, "mine_bitcoin", t0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLevelFor(t *testing.T) {
	cases := map[int64]int{0: 1, 99: 1, 100: 2, 399: 2, 400: 3, 899: 3, 900: 4, 10000: 11}
	for exp, want := range cases {
		if got := LevelFor(exp); got != want {
			t.Errorf("LevelFor(%d) = %d, want %d", exp, got, want)
		}
	}
	for lvl := 1; lvl < 30; lvl++ {
		if got := LevelFor(ExperienceForLevel(lvl)); got != lvl {
			t.Errorf("LevelFor(ExperienceForLevel(%d)) = %d", lvl, got)
		}
	}
}
