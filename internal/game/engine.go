// Package game holds the progression engine: income accrual, cooldowns,
// learning, subscriptions, daily bonus and quests. Every function derives
// state from stored timestamps and the instant passed in; nothing ticks.
package game

import (
	"math"
	"time"

	"root_tycoon/internal/domain"
)

// Rules are the product policies that are not part of the catalog.
type Rules struct {
	StartingBalance int64 `json:"starting_balance"`
	BaseServerLimit int   `json:"base_server_limit"`
	// MaxLearnedSlots caps ServerLimit reachable through serverSlots courses.
	MaxLearnedSlots int           `json:"max_learned_slots"`
	DailyBonusBase  int64         `json:"daily_bonus_base"`
	TutorialReward  int64         `json:"tutorial_reward"`
	VIPDuration     time.Duration `json:"vip_duration"`
}

func DefaultRules() Rules {
	return Rules{
		StartingBalance: 1000,
		BaseServerLimit: 3,
		MaxLearnedSlots: 25,
		DailyBonusBase:  1000,
		TutorialReward:  500,
		VIPDuration:     30 * 24 * time.Hour,
	}
}

type Engine struct {
	rules Rules
	loc   *time.Location
}

func NewEngine(rules Rules, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{rules: rules, loc: loc}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Day returns the logical day of t.
func (e *Engine) Day(t time.Time) domain.Day {
	return domain.DayOf(t, e.loc)
}

// DayStart returns the instant the logical day containing t began.
func (e *Engine) DayStart(t time.Time) time.Time {
	d := e.Day(t)
	return time.Date(d.Year, d.Month, d.Mday, 0, 0, 0, 0, e.loc)
}

// NextDayStart returns the instant the logical day after t begins.
func (e *Engine) NextDayStart(t time.Time) time.Time {
	next := e.Day(t).AddDays(1)
	return time.Date(next.Year, next.Month, next.Mday, 0, 0, 0, 0, e.loc)
}

// NewUser builds a freshly registered user.
func (e *Engine) NewUser(email, username, passwordHash string, now time.Time) domain.User {
	return domain.User{
		Email:            email,
		Username:         username,
		PasswordHash:     passwordHash,
		CreatedAt:        now,
		Balance:          e.rules.StartingBalance,
		ServerLimit:      e.rules.BaseServerLimit,
		JobLastCompleted: map[domain.JobType]time.Time{},
		LastIncomeUpdate: now,
	}
}

// ReconcileResult describes what a reconciliation changed.
type ReconcileResult struct {
	Income          int64   `json:"income"`
	CompletedCourse *Course `json:"completed_course,omitempty"`
	QuestsReset     bool    `json:"quests_reset"`
}

// Reconcile brings p up to date with now. Calling it twice with the same
// instant changes nothing the second time.
func (e *Engine) Reconcile(p *domain.Player, now time.Time) ReconcileResult {
	var res ReconcileResult

	// Income earned before today's start belongs to the quests of the day it
	// was earned on, not to the set created below.
	if start := e.DayStart(now); p.User.LastIncomeUpdate.Before(start) && !p.User.LastIncomeUpdate.IsZero() {
		e.settle(p, start, &res)
	}
	res.QuestsReset = e.EnsureDailyQuests(p, now)
	e.settle(p, now, &res)
	return res
}

// settle accrues income up to t, splitting at the end of a finished course
// so the time before it accrues at the old efficiency.
func (e *Engine) settle(p *domain.Player, t time.Time, res *ReconcileResult) {
	if c := p.User.ActiveCourse; c != nil && !t.Before(c.EndsAt) && c.EndsAt.After(p.User.LastIncomeUpdate) {
		res.Income += e.AccrueIncome(p, c.EndsAt)
	}
	if course, ok := e.CheckCompletion(p, t); ok {
		res.CompletedCourse = course
	}
	res.Income += e.AccrueIncome(p, t)
}

// LevelFor derives the level from experience.
func LevelFor(experience int64) int {
	if experience <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(experience)/100))) + 1
}

// ExperienceForLevel is the minimum experience of a level.
func ExperienceForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return n * n * 100
}

// CompleteTutorial credits the one-time tutorial reward.
func (e *Engine) CompleteTutorial(p *domain.Player, now time.Time) error {
	if p.User.TutorialCompleted {
		return ErrAlreadyClaimed
	}
	p.User.TutorialCompleted = true
	p.User.Balance += e.rules.TutorialReward
	p.Record(domain.TxTutorial, e.rules.TutorialReward, nil)
	e.EnsureDailyQuests(p, now)
	return nil
}
