package game

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestStartCourseDebitsAndBlocksSecond(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	p.User.Balance = 5000

	st, err := e.StartCourse(p, "linux_basics", t0)
	if err != nil {
		t.Fatalf("start course: %v", err)
	}
	if p.User.Balance != 0 {
		t.Fatalf("balance = %d, want 0", p.User.Balance)
	}
	if !st.EndsAt.Equal(t0.Add(30 * time.Minute)) {
		t.Fatalf("ends at %v", st.EndsAt)
	}

	_, err = e.StartCourse(p, "linux_basics", t0.Add(time.Minute))
	if !errors.Is(err, ErrAlreadyLearning) {
		t.Fatalf("expected ErrAlreadyLearning, got %v", err)
	}
	if p.User.Balance != 0 {
		t.Fatalf("failed start changed balance")
	}
}

func TestStartCourseErrors(t *testing.T) {
	e := newTestEngine()

	p := newTestPlayer(e, t0)
	p.User.Balance = 100
	_, err := e.StartCourse(p, "linux_basics", t0)
	var fundsErr *FundsError
	if !errors.As(err, &fundsErr) || fundsErr.Required != 5000 {
		t.Fatalf("expected funds error, got %v", err)
	}

	p.User.Balance = 1_000_000
	_, err = e.StartCourse(p, "networking", t0)
	if !errors.Is(err, ErrLevelTooLow) {
		t.Fatalf("expected level error, got %v", err)
	}

	if _, err := e.StartCourse(p, "basket_weaving", t0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	p.User.Experience = ExperienceForLevel(5)
	p.User.CompletedLearning = []string{"optimization"}
	if _, err := e.StartCourse(p, "optimization", t0); !errors.Is(err, ErrCourseCompleted) {
		t.Fatalf("expected course completed, got %v", err)
	}

	p.User.ServerLimit = e.Rules().MaxLearnedSlots
	if _, err := e.StartCourse(p, "linux_basics", t0); !errors.Is(err, ErrSlotLimitReached) {
		t.Fatalf("expected slot cap, got %v", err)
	}
}

func TestPoll(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	p.User.Balance = 5000
	if _, err := e.StartCourse(p, "linux_basics", t0); err != nil {
		t.Fatal(err)
	}
	c := p.User.ActiveCourse

	cases := []struct {
		at       time.Time
		progress float64
		left     time.Duration
	}{
		{t0.Add(-time.Minute), 0, 31 * time.Minute},
		{t0, 0, 30 * time.Minute},
		{t0.Add(15 * time.Minute), 50, 15 * time.Minute},
		{t0.Add(30 * time.Minute), 100, 0},
		{t0.Add(2 * time.Hour), 100, 0},
	}
	for _, tc := range cases {
		st := Poll(c, tc.at)
		if math.Abs(st.Progress-tc.progress) > 1e-9 || st.TimeRemaining != tc.left {
			t.Errorf("poll at %v: progress=%v left=%v", tc.at, st.Progress, st.TimeRemaining)
		}
	}
}

func TestCheckCompletionAppliesOnce(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	p.User.Balance = 5000
	if _, err := e.StartCourse(p, "linux_basics", t0); err != nil {
		t.Fatal(err)
	}

	if _, ok := e.CheckCompletion(p, t0.Add(29*time.Minute)); ok {
		t.Fatal("completed early")
	}

	done := t0.Add(30 * time.Minute)
	for i := 0; i < 3; i++ {
		e.Reconcile(p, done)
	}
	if p.User.ServerLimit != 5 {
		t.Fatalf("server limit = %d, want 5", p.User.ServerLimit)
	}
	if p.User.ActiveCourse != nil {
		t.Fatal("active course not cleared")
	}
	if len(p.User.CompletedLearning) != 0 {
		t.Fatalf("slot course recorded as completed: %v", p.User.CompletedLearning)
	}
}

func TestCheckCompletionClampsToCap(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	p.User.Balance = 5000
	p.User.ServerLimit = e.Rules().MaxLearnedSlots - 1
	if _, err := e.StartCourse(p, "linux_basics", t0); err != nil {
		t.Fatal(err)
	}
	e.CheckCompletion(p, t0.Add(time.Hour))
	if p.User.ServerLimit != e.Rules().MaxLearnedSlots {
		t.Fatalf("server limit = %d", p.User.ServerLimit)
	}
}

func TestUnlockCourseRecorded(t *testing.T) {
	e := newTestEngine()
	p := newTestPlayer(e, t0)
	p.User.Balance = 25000
	p.User.Experience = ExperienceForLevel(5)
	if _, err := e.StartCourse(p, "server_admin", t0); err != nil {
		t.Fatal(err)
	}
	course, ok := e.CheckCompletion(p, t0.Add(4*time.Hour))
	if !ok || course.ServerType != "advanced" {
		t.Fatalf("completion = %+v %v", course, ok)
	}
	if !p.User.HasCompleted("server_admin") {
		t.Fatal("server_admin not recorded")
	}
}
