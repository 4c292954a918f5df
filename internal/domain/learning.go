package domain

import "time"

// ActiveCourse is the single in-flight learning course of a user.
type ActiveCourse struct {
	ID        int64     `json:"-"` // learning_courses row, 0 until stored
	CourseID  string    `json:"course_id"`
	StartedAt time.Time `json:"started_at"`
	EndsAt    time.Time `json:"ends_at"`
}

// RewardType describes what a finished course grants.
type RewardType string

const (
	RewardServerSlots  RewardType = "serverSlots"
	RewardEfficiency   RewardType = "efficiency"
	RewardServerUnlock RewardType = "serverUnlock"
)
