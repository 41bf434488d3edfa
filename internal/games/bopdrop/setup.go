package bopdrop

import (
	"time"

	"github.com/vovakirdan/bopdrop/internal/config"
	platformcore "github.com/vovakirdan/bopdrop/internal/core"
	bopcore "github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
	"github.com/vovakirdan/bopdrop/internal/physics"
)

// physicsStepRate is the simulation rate the physics tuning assumes.
const physicsStepRate = 60

// BuildCatalog converts configured ranks into a catalog.
func BuildCatalog(cfg config.BopDropConfig) (*bopcore.Catalog, error) {
	ranks := make([]bopcore.Rank, len(cfg.Ranks))
	for i, rc := range cfg.Ranks {
		color, _ := platformcore.ParseColor(rc.Color)
		ranks[i] = bopcore.Rank{
			Name:   rc.Name,
			Radius: rc.Radius,
			Points: rc.Points,
			Color:  color,
			Hex:    rc.Hex,
		}
	}
	return bopcore.NewCatalog(ranks, cfg.Drop.Droppable)
}

// BuildSettings converts the field, settling and celebration sections.
func BuildSettings(cfg config.BopDropConfig) bopcore.Settings {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return bopcore.Settings{
		Width:           cfg.Field.Width,
		Height:          cfg.Field.Height,
		Wall:            cfg.Field.WallThickness,
		LoseLine:        cfg.Field.LoseLine,
		DropHeight:      cfg.Field.DropHeight,
		SettleThreshold: cfg.Settling.VelocityThreshold,
		SettleInterval:  ms(cfg.Settling.CheckIntervalMs),
		Celebration: bopcore.CelebrationSettings{
			Duration: ms(cfg.Celebration.DurationMs),
			Steps:    cfg.Celebration.Steps,
			Growth:   cfg.Celebration.Growth,
			Linger:   ms(cfg.Celebration.LingerMs),
			Banner:   ms(cfg.Celebration.BannerMs),
		},
	}
}

// BuildPhysics converts the physics section, keeping engine defaults for
// values left at zero.
func BuildPhysics(cfg config.PhysicsConfig) physics.Options {
	opts := physics.DefaultOptions()
	opts.Gravity = cfg.Gravity
	opts.Restitution = cfg.Restitution
	opts.Friction = cfg.Friction
	opts.FrictionAir = cfg.FrictionAir
	if cfg.PositionIterations > 0 {
		opts.PositionIterations = cfg.PositionIterations
	}
	if cfg.Slop > 0 {
		opts.Slop = cfg.Slop
	}
	if cfg.RestingSpeed > 0 {
		opts.RestingSpeed = cfg.RestingSpeed
	}
	return opts
}

// stepsPerTick returns how many physics steps one platform tick covers.
func stepsPerTick(tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	return max(1, (physicsStepRate+tickRate/2)/tickRate)
}
