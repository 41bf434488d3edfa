package core

import "math/rand"

// Queue holds the rank that drops next and the one shown on deck.
// Both are always drawn from [0, droppable).
type Queue struct {
	rng       *rand.Rand
	droppable int
	current   int
	preview   int
}

// NewQueue creates a queue drawing from src and fills both slots.
func NewQueue(droppable int, src rand.Source) *Queue {
	if droppable < 1 {
		droppable = 1
	}
	q := &Queue{
		rng:       rand.New(src),
		droppable: droppable,
	}
	q.Reset()
	return q
}

// Draw returns a uniformly random droppable rank.
func (q *Queue) Draw() int {
	return q.rng.Intn(q.droppable)
}

// Advance moves the preview into the current slot, draws a new preview and
// returns it.
func (q *Queue) Advance() int {
	q.current = q.preview
	q.preview = q.Draw()
	return q.preview
}

// Reset draws both slots fresh.
func (q *Queue) Reset() {
	q.current = q.Draw()
	q.preview = q.Draw()
}

// Current returns the rank that drops next.
func (q *Queue) Current() int {
	return q.current
}

// Preview returns the on-deck rank.
func (q *Queue) Preview() int {
	return q.preview
}
