package config

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// WordLength is the number of letter slots collected per level.
const WordLength = 6

// Validate checks the configuration once, before any frame runs.
func (c RunnerConfig) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Lanes.Count < 1 {
		bad("lanes.count must be >= 1, got %d", c.Lanes.Count)
	}
	if !positive(c.Lanes.Width) {
		bad("lanes.width must be > 0, got %v", c.Lanes.Width)
	}
	if !positive(c.Physics.Gravity) {
		bad("physics.gravity must be > 0, got %v", c.Physics.Gravity)
	}
	if !positive(c.Physics.JumpForce) {
		bad("physics.jump_force must be > 0, got %v", c.Physics.JumpForce)
	}
	if c.Physics.MaxFrameMs <= 0 {
		bad("physics.max_frame_ms must be > 0, got %d", c.Physics.MaxFrameMs)
	}
	if !positive(c.Player.BodyHeight) {
		bad("player.body_height must be > 0, got %v", c.Player.BodyHeight)
	}
	if c.Player.InvincibleMs < 0 {
		bad("player.invincible_ms must be >= 0, got %d", c.Player.InvincibleMs)
	}
	if !positive(c.World.SpawnDistance) {
		bad("world.spawn_distance must be > 0, got %v", c.World.SpawnDistance)
	}
	if c.World.RemoveDistance <= c.Player.Z {
		bad("world.remove_distance must be behind the player (> %v), got %v", c.Player.Z, c.World.RemoveDistance)
	}
	if c.World.MissileSpeed < 0 {
		bad("world.missile_speed must be >= 0, got %v", c.World.MissileSpeed)
	}
	if !positive(c.Collision.ZHalfWidth) || !positive(c.Collision.LaneTolerance) ||
		!positive(c.Collision.CollectTolerance) || !positive(c.Collision.PortalRadius) {
		bad("collision tolerances must be > 0")
	}
	if c.Spawn.MinGapBase < 0 || c.Spawn.MinGapPerSpeed < 0 {
		bad("spawn gaps must be >= 0")
	}
	if !positive(c.Spawn.LetterInterval) {
		bad("spawn.letter_interval must be > 0, got %v", c.Spawn.LetterInterval)
	}
	if c.Spawn.LetterGrowth < 1 {
		bad("spawn.letter_growth must be >= 1, got %v", c.Spawn.LetterGrowth)
	}
	for name, p := range map[string]float64{
		"content_chance":   c.Spawn.ContentChance,
		"obstacle_share":   c.Spawn.ObstacleShare,
		"alien_chance":     c.Spawn.AlienChance,
		"bonus_gem_chance": c.Spawn.BonusGemChance,
	} {
		if math.IsNaN(p) || p < 0 || p > 1 {
			bad("spawn.%s must be within [0, 1], got %v", name, p)
		}
	}
	if c.Run.Lives < 1 || c.Run.MaxLives < c.Run.Lives {
		bad("run.lives must be >= 1 and <= run.max_lives")
	}
	if c.Run.MaxLevel < 0 {
		bad("run.max_level must be >= 0, got %d", c.Run.MaxLevel)
	}
	if !positive(c.Run.BaseSpeed) || c.Run.SpeedPerLevel < 0 {
		bad("run.base_speed must be > 0 and run.speed_per_level >= 0")
	}
	if n := utf8.RuneCountInString(c.Run.Word); n != WordLength {
		bad("run.word must have %d letters, got %d", WordLength, n)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func positive(v float64) bool {
	return !math.IsNaN(v) && v > 0
}
