// Package scheduler throttles the frame loop to a target step rate.
package scheduler

import (
	"context"
	"time"

	"github.com/pthm-cable/starfield/clock"
)

// A refresh within interval/slackDivisor of the next step counts as due.
const slackDivisor = 100

// Scheduler decides on each display refresh whether a simulation/render step
// is due. It is not safe for concurrent use; the frame loop owns it.
type Scheduler struct {
	interval time.Duration
	then     time.Time
	started  bool
	hidden   bool
	steps    uint64
}

// New creates a scheduler stepping at most once per interval.
func New(interval time.Duration) *Scheduler {
	s := &Scheduler{}
	s.SetInterval(interval)
	return s
}

// SetInterval changes the minimum time between steps. A non-positive interval
// steps on every refresh.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.interval = d
}

// Interval returns the current minimum time between steps.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Due reports whether a step should run at now. At most one step is granted
// per call, so a long stall never produces a burst. The remainder of the
// elapsed time is carried so the average rate does not drift.
func (s *Scheduler) Due(now time.Time) bool {
	if s.hidden {
		return false
	}
	if !s.started {
		// First refresh paints immediately
		s.started = true
		s.then = now
		s.steps++
		return true
	}
	if s.interval <= 0 {
		s.then = now
		s.steps++
		return true
	}

	// Refreshes landing on or within slack of the interval step, so a display
	// running at exactly the target rate is not halved.
	elapsed := now.Sub(s.then)
	if elapsed < s.interval-s.interval/slackDivisor {
		return false
	}
	if elapsed >= s.interval {
		s.then = now.Add(-(elapsed % s.interval))
	} else {
		// Slightly early: keep the interval grid
		s.then = s.then.Add(s.interval)
	}
	s.steps++
	return true
}

// Hide stops granting steps until Show is called.
func (s *Scheduler) Hide() {
	s.hidden = true
}

// Show resumes stepping. The next step is due one interval after now.
func (s *Scheduler) Show(now time.Time) {
	if !s.hidden {
		return
	}
	s.hidden = false
	s.then = now
	s.started = true
}

// Visible reports whether the scheduler is granting steps.
func (s *Scheduler) Visible() bool {
	return !s.hidden
}

// Steps returns the number of steps granted so far.
func (s *Scheduler) Steps() uint64 {
	return s.steps
}

// Run calls frame once per refresh period until ctx is cancelled, passing the
// clock's current time. It serves hosts without a display refresh signal;
// frame is expected to call Due itself.
func Run(ctx context.Context, clk clock.Clock, refresh time.Duration, frame func(now time.Time)) error {
	if refresh <= 0 {
		refresh = time.Second / 60
	}
	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame(clk.Now())
		}
	}
}
