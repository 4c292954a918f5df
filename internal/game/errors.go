package game

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrCooldownActive          = errors.New("cooldown active")
	ErrAlreadyLearning         = errors.New("already learning")
	ErrAlreadyClaimed          = errors.New("already claimed")
	ErrSlotLimitReached        = errors.New("slot limit reached")
	ErrLevelTooLow             = errors.New("level too low")
	ErrConflictingSubscription = errors.New("conflicting subscription")
	ErrNotFound                = errors.New("not found")

	ErrCourseCompleted    = errors.New("course already completed")
	ErrLocked             = errors.New("required course not completed")
	ErrNotCompleted       = errors.New("requirements not met")
	ErrTutorialIncomplete = errors.New("tutorial not completed")
	ErrInvalidLoad        = errors.New("load must be between 10 and 100")
)

// FundsError reports how much was required.
type FundsError struct {
	Required int64
	Balance  int64
}

func (e *FundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d, have %d", e.Required, e.Balance)
}

func (e *FundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// CooldownError reports the time left until the job may start again.
type CooldownError struct {
	Job       string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("job %s on cooldown for %s", e.Job, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool { return target == ErrCooldownActive }

// LevelError reports the level needed.
type LevelError struct {
	Required int
	Current  int
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("level %d required, current %d", e.Required, e.Current)
}

func (e *LevelError) Is(target error) bool { return target == ErrLevelTooLow }

// SlotError reports the slot limit that blocked the action.
type SlotError struct {
	Limit int
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("slot limit %d reached", e.Limit)
}

func (e *SlotError) Is(target error) bool { return target == ErrSlotLimitReached }

// NotFoundError names the missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(kind string, id interface{}) error {
	return &NotFoundError{Kind: kind, ID: fmt.Sprint(id)}
}

func needFunds(required, balance int64) error {
	return &FundsError{Required: required, Balance: balance}
}

var ruleErrors = []error{
	ErrInsufficientFunds, ErrCooldownActive, ErrAlreadyLearning, ErrAlreadyClaimed,
	ErrSlotLimitReached, ErrLevelTooLow, ErrConflictingSubscription, ErrNotFound,
	ErrCourseCompleted, ErrLocked, ErrNotCompleted, ErrTutorialIncomplete, ErrInvalidLoad,
}

// IsRuleError reports whether err is a game rule rejection rather than an
// infrastructure failure.
func IsRuleError(err error) bool {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
