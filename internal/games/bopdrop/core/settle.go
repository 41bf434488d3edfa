package core

import (
	"math"
	"time"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// Settled reports whether every non-static body moves no faster than threshold.
func Settled(bodies []physics.Body, threshold float64) bool {
	for _, b := range bodies {
		if b.Static {
			continue
		}
		if math.Hypot(b.Vel.X, b.Vel.Y) > threshold {
			return false
		}
	}
	return true
}

// ClampToFloor pushes any non-static circle that sank below height back onto
// the floor and damps it: vx*0.9, vy becomes -|vy|*0.5.
func ClampToFloor(w World, height float64) {
	for _, b := range w.Bodies() {
		if b.Static || b.Shape != physics.ShapeCircle {
			continue
		}
		if b.Bottom() <= height {
			continue
		}
		w.SetPosition(b.ID, platformcore.V(b.Pos.X, height-b.Radius))
		w.SetVelocity(b.ID, platformcore.V(b.Vel.X*0.9, -math.Abs(b.Vel.Y)*0.5))
	}
}

// Settler polls until the field settles. At most one poll is pending.
type Settler struct {
	sched    *platformcore.Scheduler
	interval time.Duration
	check    func() bool // true stops polling
	task     platformcore.TaskID
}

// NewSettler creates a settler that runs check every interval until it
// returns true.
func NewSettler(sched *platformcore.Scheduler, interval time.Duration, check func() bool) *Settler {
	return &Settler{
		sched:    sched,
		interval: interval,
		check:    check,
	}
}

// Begin cancels any pending poll and schedules a fresh one.
func (s *Settler) Begin() {
	s.Cancel()
	s.task = s.sched.After(s.interval, s.poll)
}

// Cancel drops the pending poll, if any.
func (s *Settler) Cancel() {
	if s.task != 0 {
		s.sched.Cancel(s.task)
		s.task = 0
	}
}

// Pending reports whether a poll is scheduled.
func (s *Settler) Pending() bool {
	return s.task != 0
}

func (s *Settler) poll() {
	s.task = 0
	if s.check() {
		return
	}
	s.task = s.sched.After(s.interval, s.poll)
}
