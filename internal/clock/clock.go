// Package clock provides the time source used by the game engine.
// Production code uses Real; tests drive time with Mock.
package clock

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // containers often ship without zoneinfo
)

// Clock is the injectable source of the current instant.
type Clock interface {
	Now() time.Time
}

// Real returns the system time.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Mock is a clock with controllable time, safe for concurrent use.
type Mock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMock creates a mock clock set to t.
func NewMock(t time.Time) *Mock {
	return &Mock{current: t}
}

func (c *Mock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Set moves the clock to t.
func (c *Mock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the clock forward by d.
func (c *Mock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// DefaultZone is the reference zone for daily resets.
const DefaultZone = "Europe/Berlin"

// LoadZone resolves an IANA zone name; "" means DefaultZone. An unknown name
// is an error: a fixed offset would lose DST and shift the daily reset.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}

// MustLoadZone is LoadZone for names known to be valid. It panics otherwise.
func MustLoadZone(name string) *time.Location {
	loc, err := LoadZone(name)
	if err != nil {
		panic(err)
	}
	return loc
}
