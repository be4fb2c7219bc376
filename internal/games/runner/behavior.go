package runner

import (
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// outcome classifies what touching an entity does to the player.
type outcome uint8

const (
	outcomeDamage outcome = iota
	outcomeCollect
	outcomeEnterShop
)

// behavior is the per-kind dispatch row used by the stepper, the
// collision resolver and the spawner.
type behavior struct {
	// static entities count toward spawn spacing; projectiles do not.
	static bool
	// extraSpeed adds forward velocity on top of the world scroll.
	extraSpeed func(cfg *config.RunnerConfig) float64
	// outcome selects the collision rule.
	outcome outcome
	// laneBound entities must share the player's lane to collide.
	laneBound bool
	// band is the vertical extent used for damage overlap.
	band func(e *Entity, cfg *config.RunnerConfig) core.Span
	// color is the default cosmetic tag.
	color core.Color
}

func noExtraSpeed(*config.RunnerConfig) float64 { return 0 }

// behaviors is indexed by Kind and must cover every kind; see init.
var behaviors = [kindCount]behavior{
	KindObstacle: {
		static:     true,
		extraSpeed: noExtraSpeed,
		outcome:    outcomeDamage,
		laneBound:  true,
		// Obstacles are fixed ground blocks regardless of spawn height.
		band: func(_ *Entity, cfg *config.RunnerConfig) core.Span {
			return core.NewSpan(0, cfg.Collision.ObstacleHeight)
		},
		color: core.ColorRed,
	},
	KindAlien: {
		static:     true,
		extraSpeed: noExtraSpeed,
		outcome:    outcomeDamage,
		laneBound:  true,
		band: func(e *Entity, cfg *config.RunnerConfig) core.Span {
			h := cfg.Collision.AlienHalfHeight
			return core.NewSpan(e.Pos.Y-h, e.Pos.Y+h)
		},
		color: core.ColorBrightGreen,
	},
	KindMissile: {
		static:     false,
		extraSpeed: func(cfg *config.RunnerConfig) float64 { return cfg.World.MissileSpeed },
		outcome:    outcomeDamage,
		laneBound:  true,
		band: func(e *Entity, cfg *config.RunnerConfig) core.Span {
			h := cfg.Collision.MissileHalfHeight
			return core.NewSpan(e.Pos.Y-h, e.Pos.Y+h)
		},
		color: core.ColorOrange,
	},
	KindGem: {
		static:     true,
		extraSpeed: noExtraSpeed,
		outcome:    outcomeCollect,
		laneBound:  true,
		color:      core.ColorBrightCyan,
	},
	KindLetter: {
		static:     true,
		extraSpeed: noExtraSpeed,
		outcome:    outcomeCollect,
		laneBound:  true,
		color:      core.ColorBrightYellow,
	},
	KindShopPortal: {
		static:     true,
		extraSpeed: noExtraSpeed,
		outcome:    outcomeEnterShop,
		laneBound:  false,
		color:      core.ColorBrightMagenta,
	},
}

func init() {
	for k := Kind(0); k < kindCount; k++ {
		b := behaviors[k]
		if b.extraSpeed == nil {
			panic("runner: behavior table missing extraSpeed for " + k.String())
		}
		if b.outcome == outcomeDamage && b.band == nil {
			panic("runner: damage source without band: " + k.String())
		}
	}
}
