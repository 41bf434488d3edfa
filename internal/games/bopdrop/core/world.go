package core

import (
	"time"

	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// World is the physics collaborator the Machine drives. *physics.World
// satisfies it; tests use a scripted fake.
type World interface {
	AddCircle(pos platformcore.Vec, radius float64, static bool) physics.ID
	AddWalls(width, height, thickness float64) []physics.ID
	Remove(ids ...physics.ID)
	Body(id physics.ID) (physics.Body, bool)
	Bodies() []physics.Body

	SetPosition(id physics.ID, pos platformcore.Vec)
	SetVelocity(id physics.ID, vel platformcore.Vec)
	SetAngle(id physics.ID, angle float64)
	SetAngularVelocity(id physics.ID, spin float64)
	SetStatic(id physics.ID, static bool)

	Clear()
	Stop()
	Resume()

	OnStep(fn func()) (cancel func())
	OnContact(fn func(a, b physics.ID)) (cancel func())
}

var _ World = (*physics.World)(nil)

// Settings are the field geometry and timings used by the Machine.
// Distances are in world units with y growing downward.
type Settings struct {
	Width      float64
	Height     float64
	Wall       float64 // Wall thickness; drops are clamped to [Wall, Width-Wall]
	LoseLine   float64 // A contact with a bottom edge above this y ends the game
	DropHeight float64 // y of the preview and of dropped pieces

	SettleThreshold float64       // Max speed of a settled piece, units per step
	SettleInterval  time.Duration // Delay between settling checks

	Celebration CelebrationSettings
}

// CelebrationSettings shape the animation played when a bop is made.
type CelebrationSettings struct {
	Duration time.Duration // Time to glide to the center
	Steps    int           // Animation frames over Duration
	Growth   float64       // Extra scale at the end, 0.5 means 150%
	Linger   time.Duration // Delay before the piece is removed
	Banner   time.Duration // How long the bop banner stays up
}

// DefaultSettings returns the stock field: 768x960 with 64 unit walls.
func DefaultSettings() Settings {
	return Settings{
		Width:           768,
		Height:          960,
		Wall:            64,
		LoseLine:        84,
		DropHeight:      60,
		SettleThreshold: 0.8,
		SettleInterval:  100 * time.Millisecond,
		Celebration: CelebrationSettings{
			Duration: 1500 * time.Millisecond,
			Steps:    30,
			Growth:   0.5,
			Linger:   200 * time.Millisecond,
			Banner:   2 * time.Second,
		},
	}
}

// ClampX clamps a drop position into the playable width.
func (s Settings) ClampX(x float64) float64 {
	return platformcore.ClampF(x, s.Wall, s.Width-s.Wall)
}

// Center returns the middle of the field.
func (s Settings) Center() platformcore.Vec {
	return platformcore.V(s.Width/2, s.Height/2)
}
