package core

import (
	"time"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// Celebrator plays the bop animation: the piece freezes, grows and glides
// to the field center, then disappears.
type Celebrator struct {
	sched  *platformcore.Scheduler
	world  World
	cfg    CelebrationSettings
	center platformcore.Vec

	onScale func(id physics.ID, scale float64)
	onDone  func(id physics.ID)

	tasks map[physics.ID][]platformcore.TaskID
}

// NewCelebrator creates a celebrator. onScale receives the render scale of
// every frame; onDone runs after the piece has been removed from the world.
func NewCelebrator(sched *platformcore.Scheduler, w World, cfg CelebrationSettings, center platformcore.Vec,
	onScale func(physics.ID, float64), onDone func(physics.ID)) *Celebrator {
	if cfg.Steps < 1 {
		cfg.Steps = 1
	}
	return &Celebrator{
		sched:   sched,
		world:   w,
		cfg:     cfg,
		center:  center,
		onScale: onScale,
		onDone:  onDone,
		tasks:   make(map[physics.ID][]platformcore.TaskID),
	}
}

// Celebrate starts the animation for a piece. Unknown pieces are ignored.
func (c *Celebrator) Celebrate(id physics.ID) {
	body, ok := c.world.Body(id)
	if !ok {
		return
	}
	start := body.Pos
	c.world.SetStatic(id, true)

	frame := c.cfg.Duration / time.Duration(c.cfg.Steps)
	ids := make([]platformcore.TaskID, 0, c.cfg.Steps+1)
	for step := 1; step <= c.cfg.Steps; step++ {
		progress := float64(step) / float64(c.cfg.Steps)
		ids = append(ids, c.sched.After(frame*time.Duration(step), func() {
			e := platformcore.EaseOutCubic(progress)
			c.world.SetPosition(id, start.Lerp(c.center, e))
			if c.onScale != nil {
				c.onScale(id, 1+e*c.cfg.Growth)
			}
		}))
	}
	ids = append(ids, c.sched.After(frame*time.Duration(c.cfg.Steps)+c.cfg.Linger, func() {
		delete(c.tasks, id)
		c.world.Remove(id)
		if c.onDone != nil {
			c.onDone(id)
		}
	}))
	c.tasks[id] = ids
}

// Active returns how many celebrations are still running.
func (c *Celebrator) Active() int {
	return len(c.tasks)
}

// Cancel stops every running celebration without touching the world.
func (c *Celebrator) Cancel() {
	for id, ids := range c.tasks {
		for _, t := range ids {
			c.sched.Cancel(t)
		}
		delete(c.tasks, id)
	}
}
