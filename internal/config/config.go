// Package config provides YAML-based configuration loading and difficulty
// presets for Bop Drop.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bopdrop/internal/core"
)

// BopDropConfig contains all configuration for Bop Drop.
type BopDropConfig struct {
	Field       FieldConfig       `yaml:"field"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Settling    SettlingConfig    `yaml:"settling"`
	Drop        DropConfig        `yaml:"drop"`
	Celebration CelebrationConfig `yaml:"celebration"`
	Ranks       []RankConfig      `yaml:"ranks"`
}

// FieldConfig defines the pit geometry in world units. y grows downward.
type FieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	LoseLine      float64 `yaml:"lose_line"`   // y of the lose line
	DropHeight    float64 `yaml:"drop_height"` // y where pieces are released
}

// PhysicsConfig tunes the circle simulation. Speeds are per step.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	Restitution        float64 `yaml:"restitution"`
	Friction           float64 `yaml:"friction"`
	FrictionAir        float64 `yaml:"friction_air"`
	PositionIterations int     `yaml:"position_iterations"`
	Slop               float64 `yaml:"slop"`
	RestingSpeed       float64 `yaml:"resting_speed"`
}

// SettlingConfig defines when the field counts as settled.
type SettlingConfig struct {
	VelocityThreshold float64 `yaml:"velocity_threshold"`
	CheckIntervalMs   int     `yaml:"check_interval_ms"`
}

// DropConfig defines the drop queue and pointer.
type DropConfig struct {
	Droppable   int     `yaml:"droppable"`    // Number of smallest ranks that can be dropped
	PointerStep float64 `yaml:"pointer_step"` // World units moved per left/right press
}

// CelebrationConfig defines the bop animation.
type CelebrationConfig struct {
	DurationMs int     `yaml:"duration_ms"`
	Steps      int     `yaml:"steps"`
	Growth     float64 `yaml:"growth"`
	LingerMs   int     `yaml:"linger_ms"`
	BannerMs   int     `yaml:"banner_ms"`
}

// RankConfig defines one rank. Ranks are listed smallest first.
type RankConfig struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius"`
	Points int     `yaml:"points"`
	Color  string  `yaml:"color"` // Terminal color name, see core.ParseColor
	Hex    string  `yaml:"hex"`
}

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the values that would make the game unplayable.
// Rank ordering is checked when the catalog is built.
func (c BopDropConfig) Validate() error {
	f := c.Field
	if f.Width <= 2*f.WallThickness || f.WallThickness < 0 {
		return invalid("field width %.0f must exceed twice the wall thickness %.0f", f.Width, f.WallThickness)
	}
	if f.Height <= 0 {
		return invalid("field height must be positive, got %.0f", f.Height)
	}
	if f.LoseLine <= 0 || f.LoseLine >= f.Height {
		return invalid("lose line %.0f must be inside the field", f.LoseLine)
	}
	if f.DropHeight < 0 || f.DropHeight >= f.Height {
		return invalid("drop height %.0f must be inside the field", f.DropHeight)
	}
	if c.Settling.CheckIntervalMs <= 0 {
		return invalid("settling check interval must be positive")
	}
	if c.Settling.VelocityThreshold < 0 {
		return invalid("settling velocity threshold must not be negative")
	}
	if c.Drop.Droppable < 1 {
		return invalid("droppable must be at least 1, got %d", c.Drop.Droppable)
	}
	if c.Celebration.Steps < 1 {
		return invalid("celebration steps must be at least 1")
	}
	if len(c.Ranks) == 0 {
		return invalid("at least one rank is required")
	}
	for i, r := range c.Ranks {
		if r.Color == "" {
			continue
		}
		if _, ok := core.ParseColor(r.Color); !ok {
			return invalid("rank %d has unknown color %q", i, r.Color)
		}
	}
	return nil
}
