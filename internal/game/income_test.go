package game

import (
	"math"
	"testing"
	"time"

	"root_tycoon/internal/domain"
)

func TestEffectiveIncomePerMinute(t *testing.T) {
	cases := []struct {
		base float64
		load int
		want float64
	}{
		{100, 50, 100},
		{100, 100, 150},
		{100, 10, 60},
		{150, 50, 150},
		{400, 75, 500},
	}
	for _, c := range cases {
		got := EffectiveIncomePerMinute(c.base, c.load)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("EffectiveIncomePerMinute(%v, %d) = %v, want %v", c.base, c.load, got, c.want)
		}
	}
}

func TestAccrueIncomeTenMinutes(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "standard", 50, t0.Add(-time.Hour))
	start := p.User.Balance

	got := e.AccrueIncome(p, t0.Add(10*time.Minute))
	if got != 1500 {
		t.Fatalf("expected 1500 income, got %d", got)
	}
	if p.User.Balance != start+1500 {
		t.Fatalf("balance = %d, want %d", p.User.Balance, start+1500)
	}
	if !p.User.LastIncomeUpdate.Equal(t0.Add(10 * time.Minute)) {
		t.Fatalf("last income update not advanced: %v", p.User.LastIncomeUpdate)
	}
	if p.User.TotalEarned != 1500 {
		t.Fatalf("total earned = %d", p.User.TotalEarned)
	}
}

func TestAccrueIncomeIdempotentAtSameInstant(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "standard", 50, t0)

	now := t0.Add(5 * time.Minute)
	first := e.AccrueIncome(p, now)
	balance := p.User.Balance
	if second := e.AccrueIncome(p, now); second != 0 {
		t.Fatalf("second accrual at same instant credited %d", second)
	}
	if p.User.Balance != balance || first != 750 {
		t.Fatalf("first=%d balance=%d", first, p.User.Balance)
	}

	// clock going backwards credits nothing
	if got := e.AccrueIncome(p, now.Add(-time.Minute)); got != 0 {
		t.Fatalf("accrual into the past credited %d", got)
	}
}

func TestAccrueIncomeSplitEqualsSingle(t *testing.T) {
	e := newTestEngine()
	split := newTestPlayer(e, t0)
	single := newTestPlayer(e, t0)
	addServer(split, "standard", 80, t0)
	addServer(single, "standard", 80, t0)
	addServer(split, "basic", 30, t0)
	addServer(single, "basic", 30, t0)

	var total int64
	for _, m := range []int{1, 3, 7, 10} {
		total += e.AccrueIncome(split, t0.Add(time.Duration(m)*time.Minute))
	}
	want := e.AccrueIncome(single, t0.Add(10*time.Minute))
	if total != want {
		t.Fatalf("split accrual %d != single accrual %d", total, want)
	}
}

func TestAccrueIncomeCarriesFractions(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "basic", 50, t0)

	var total int64
	for i := 1; i <= 60; i++ {
		total += e.AccrueIncome(p, t0.Add(time.Duration(i)*time.Second))
	}
	if total != 50 {
		t.Fatalf("60 one-second accruals credited %d, want 50", total)
	}
}

func TestAccrueIncomeSkipsOfflineAndUnbuilt(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	off := addServer(p, "standard", 50, t0)
	off.Online = false
	// basic becomes productive two minutes in
	addServer(p, "basic", 50, t0.Add(2*time.Minute))

	got := e.AccrueIncome(p, t0.Add(10*time.Minute))
	if got != 400 {
		t.Fatalf("expected 8 minutes of basic income (400), got %d", got)
	}
}

func TestAccrueIncomeMonotonic(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "advanced", 100, t0)

	prev := p.User.Balance
	for i := 1; i <= 20; i++ {
		e.AccrueIncome(p, t0.Add(time.Duration(i*i)*time.Second))
		if p.User.Balance < prev {
			t.Fatalf("balance decreased at step %d: %d -> %d", i, prev, p.User.Balance)
		}
		prev = p.User.Balance
	}
}

func TestEfficiencyAppliesFromCourseEnd(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	addServer(p, "basic", 50, t0)
	p.User.ActiveCourse = &domain.ActiveCourse{CourseID: "optimization", StartedAt: t0.Add(-3 * time.Hour), EndsAt: t0.Add(10 * time.Minute)}

	res := e.Reconcile(p, t0.Add(20*time.Minute))
	// 10 minutes at 50 plus 10 minutes at 55
	if res.Income != 1050 {
		t.Fatalf("expected 1050, got %d", res.Income)
	}
	if res.CompletedCourse == nil || res.CompletedCourse.ID != "optimization" {
		t.Fatalf("course not completed: %+v", res.CompletedCourse)
	}
	if got := EfficiencyMultiplier(&p.User); math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("efficiency = %v", got)
	}
}
