// Package clock abstracts time so per-action durations can be asserted in tests.
package clock

import (
	"sync"
	"time"
)

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// Stepping is a Clock for tests. Each call to Now returns the current
// reading and then advances it by Step.
type Stepping struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewStepping returns a Stepping clock starting at start.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{now: start, Step: step}
}

// Now returns the current reading and advances the clock by Step.
func (s *Stepping) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now
	s.now = s.now.Add(s.Step)
	return t
}

var _ Clock = (*Stepping)(nil)
