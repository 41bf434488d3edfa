// Package physics is a small deterministic rigid-body world for circles that
// fall under gravity inside static boxes. Velocities are expressed per step,
// so one Step call is one fixed tick of the simulation.
package physics

import (
	"github.com/vovakirdan/bopdrop/internal/core"
)

// ID identifies a body in a World. The zero value never refers to a body.
type ID uint32

// Shape is the collision shape of a body.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeBox
)

// Body is a snapshot of a simulated body. Mutating a returned Body has no
// effect on the world; use the World setters instead.
type Body struct {
	ID     ID
	Shape  Shape
	Pos    core.Vec // Center
	Vel    core.Vec // Units per step
	Angle  float64
	Spin   float64 // Angular velocity, radians per step
	Radius float64 // Circles only
	HalfW  float64 // Boxes only
	HalfH  float64 // Boxes only
	Static bool
}

// Bottom returns the y coordinate of the lowest point of the body.
func (b Body) Bottom() float64 {
	if b.Shape == ShapeBox {
		return b.Pos.Y + b.HalfH
	}
	return b.Pos.Y + b.Radius
}

// Speed returns the magnitude of the body's velocity.
func (b Body) Speed() float64 {
	return b.Vel.Len()
}

// invMass returns the inverse mass; static bodies are immovable.
func (b *Body) invMass() float64 {
	if b.Static {
		return 0
	}
	if b.Shape == ShapeCircle && b.Radius > 0 {
		return 1 / (b.Radius * b.Radius)
	}
	if b.HalfW > 0 && b.HalfH > 0 {
		return 1 / (4 * b.HalfW * b.HalfH)
	}
	return 1
}

// Options tunes the simulation.
type Options struct {
	Gravity            float64 // Downward acceleration, units per step squared
	Restitution        float64 // Bounciness of contacts (0..1)
	Friction           float64 // Coulomb friction coefficient for contacts
	FrictionAir        float64 // Fraction of velocity lost every step
	PositionIterations int     // Contact resolution passes per step
	Slop               float64 // Allowed penetration before positional correction
	RestingSpeed       float64 // Approach speed below which contacts do not bounce
	TouchSlop          float64 // Gap under which two bodies count as touching
	MaxCorrectionSpeed float64 // Cap on speed gained from being pushed out of an overlap
}

// DefaultOptions returns options tuned for a field roughly 1000 units tall
// stepped at 60Hz.
func DefaultOptions() Options {
	return Options{
		Gravity:            1.2,
		Restitution:        0.2,
		Friction:           0.002,
		FrictionAir:        0,
		PositionIterations: 10,
		Slop:               0.05,
		RestingSpeed:       1.5,
		TouchSlop:          0.5,
		MaxCorrectionSpeed: 6,
	}
}
