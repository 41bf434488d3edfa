package config

import (
	_ "embed"
)

//go:embed defaults/bopdrop.yaml
var defaultBopDropYAML []byte

// DefaultBopDropConfig returns the default Bop Drop configuration.
func DefaultBopDropConfig() BopDropConfig {
	return BopDropConfig{
		Field: FieldConfig{
			Width:         768,
			Height:        960,
			WallThickness: 64,
			LoseLine:      84,
			DropHeight:    60,
		},
		Physics: PhysicsConfig{
			Gravity:            1.2,
			Restitution:        0.2,
			Friction:           0.002,
			FrictionAir:        0,
			PositionIterations: 10,
			Slop:               0.05,
			RestingSpeed:       1.5,
		},
		Settling: SettlingConfig{
			VelocityThreshold: 0.8,
			CheckIntervalMs:   100,
		},
		Drop: DropConfig{
			Droppable:   5,
			PointerStep: 24,
		},
		Celebration: CelebrationConfig{
			DurationMs: 1500,
			Steps:      30,
			Growth:     0.5,
			LingerMs:   200,
			BannerMs:   2000,
		},
		Ranks: []RankConfig{
			{Name: "ball-0", Radius: 25, Points: 1, Color: "red", Hex: "#FF6B6B"},
			{Name: "ball-1", Radius: 35, Points: 3, Color: "orange", Hex: "#FFA500"},
			{Name: "ball-2", Radius: 46, Points: 6, Color: "gold", Hex: "#FFD700"},
			{Name: "ball-3", Radius: 56, Points: 10, Color: "green", Hex: "#90EE90"},
			{Name: "ball-4", Radius: 67, Points: 15, Color: "cyan", Hex: "#00CED1"},
			{Name: "ball-5", Radius: 77, Points: 21, Color: "blue", Hex: "#4169E1"},
			{Name: "ball-6", Radius: 88, Points: 28, Color: "magenta", Hex: "#9370DB"},
			{Name: "ball-7", Radius: 89, Points: 36, Color: "pink", Hex: "#FF69B4"},
			{Name: "ball-8", Radius: 108, Points: 45, Color: "bright_magenta", Hex: "#FF1493"},
			{Name: "ball-9", Radius: 119, Points: 55, Color: "bright_green", Hex: "#00FF7F"},
			{Name: "ball-10", Radius: 129, Points: 66, Color: "gold", Hex: "#FFD700"},
			{Name: "ball-11", Radius: 140, Points: 80, Color: "orange", Hex: "#FF4500"},
			{Name: "ball-12", Radius: 150, Points: 100, Color: "bright_red", Hex: "#FF0000"},
		},
	}
}
