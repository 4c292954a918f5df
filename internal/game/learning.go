package game

import (
	"time"

	"root_tycoon/internal/domain"
)

// LearningStatus is the polled view of the active course.
type LearningStatus struct {
	CourseID      string        `json:"course_id"`
	Progress      float64       `json:"progress"`
	TimeRemaining time.Duration `json:"time_remaining"`
	StartedAt     time.Time     `json:"started_at"`
	EndsAt        time.Time     `json:"ends_at"`
}

// Poll returns progress in percent clamped to [0,100] and the time left.
func Poll(c *domain.ActiveCourse, now time.Time) LearningStatus {
	st := LearningStatus{CourseID: c.CourseID, StartedAt: c.StartedAt, EndsAt: c.EndsAt}

	total := c.EndsAt.Sub(c.StartedAt)
	if total <= 0 {
		st.Progress = 100
	} else {
		st.Progress = float64(now.Sub(c.StartedAt)) / float64(total) * 100
	}
	if st.Progress < 0 {
		st.Progress = 0
	}
	if st.Progress > 100 {
		st.Progress = 100
	}

	st.TimeRemaining = c.EndsAt.Sub(now)
	if st.TimeRemaining < 0 {
		st.TimeRemaining = 0
	}
	return st
}

// Repeatable reports whether a course can be taken more than once.
func (c Course) Repeatable() bool {
	return c.Reward == domain.RewardServerSlots
}

// StartCourse debits the price and starts the course with end = now + duration.
func (e *Engine) StartCourse(p *domain.Player, courseID string, now time.Time) (*LearningStatus, error) {
	course, ok := Courses[courseID]
	if !ok {
		return nil, notFound("course", courseID)
	}

	u := &p.User
	if u.ActiveCourse != nil {
		return nil, ErrAlreadyLearning
	}
	if !course.Repeatable() && u.HasCompleted(courseID) {
		return nil, ErrCourseCompleted
	}
	if u.Balance < course.Price {
		return nil, needFunds(course.Price, u.Balance)
	}
	if lvl := LevelFor(u.Experience); lvl < course.RequiredLevel {
		return nil, &LevelError{Required: course.RequiredLevel, Current: lvl}
	}
	if course.Reward == domain.RewardServerSlots && u.ServerLimit >= e.rules.MaxLearnedSlots {
		return nil, &SlotError{Limit: e.rules.MaxLearnedSlots}
	}

	u.Balance -= course.Price
	p.Record(domain.TxCoursePurchase, -course.Price, map[string]interface{}{"course": courseID})

	u.ActiveCourse = &domain.ActiveCourse{
		CourseID:  courseID,
		StartedAt: now,
		EndsAt:    now.Add(course.Duration),
	}
	st := Poll(u.ActiveCourse, now)
	return &st, nil
}

// CheckCompletion applies the reward of a finished course and clears it.
// The active course is cleared in the same step, so a later call finds
// nothing to complete.
func (e *Engine) CheckCompletion(p *domain.Player, now time.Time) (*Course, bool) {
	u := &p.User
	active := u.ActiveCourse
	if active == nil || now.Before(active.EndsAt) {
		return nil, false
	}
	u.ActiveCourse = nil

	course, ok := Courses[active.CourseID]
	if !ok {
		return nil, false
	}

	switch course.Reward {
	case domain.RewardServerSlots:
		u.ServerLimit += course.Amount
		if u.ServerLimit > e.rules.MaxLearnedSlots {
			u.ServerLimit = e.rules.MaxLearnedSlots
		}
	case domain.RewardEfficiency, domain.RewardServerUnlock:
		if !u.HasCompleted(course.ID) {
			u.CompletedLearning = append(u.CompletedLearning, course.ID)
		}
	}
	return &course, true
}
