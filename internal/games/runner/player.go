package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Intent is a logical input decoded from the platform's actions.
type Intent uint8

const (
	IntentLeft Intent = 1 << iota
	IntentRight
	IntentJump
	IntentPower
)

// Intents is the set of intents for one frame.
type Intents uint8

// Has reports whether the intent is present.
func (in Intents) Has(i Intent) bool {
	return uint8(in)&uint8(i) != 0
}

// With returns the set with i added.
func (in Intents) With(i Intent) Intents {
	return Intents(uint8(in) | uint8(i))
}

// IntentsFromInput maps platform actions to runner intents.
func IntentsFromInput(f core.InputFrame) Intents {
	var in Intents
	if f.Has(core.ActionLeft) {
		in = in.With(IntentLeft)
	}
	if f.Has(core.ActionRight) {
		in = in.With(IntentRight)
	}
	if f.Has(core.ActionJump) {
		in = in.With(IntentJump)
	}
	if f.Has(core.ActionPower) {
		in = in.With(IntentPower)
	}
	return in
}

// Pose is the player's collision volume for one frame.
type Pose struct {
	Lane   int
	X      float64 // Logical lane x, not the smoothed visual x
	Y      float64 // Feet height
	Z      float64
	Height float64 // Body height
}

// Body returns the vertical band occupied by the player.
func (p Pose) Body() core.Span {
	return core.NewSpan(p.Y, p.Y+p.Height)
}

// Center returns the vertical middle of the body.
func (p Pose) Center() float64 {
	return p.Y + p.Height/2
}

// Player owns lane, jump physics and the invincibility window.
type Player struct {
	cfg *config.RunnerConfig

	maxLane   int
	lane      int
	height    float64
	velocity  float64
	jumpsUsed int
	flips     int // Restarts on every air jump, cosmetic only

	invincible      bool
	invincibleUntil time.Duration
}

// NewPlayer creates a grounded player in lane 0.
func NewPlayer(cfg *config.RunnerConfig) *Player {
	return &Player{cfg: cfg, maxLane: cfg.MaxLane()}
}

// Reset returns the player to lane 0 on the ground for the given lane count.
func (p *Player) Reset(laneCount int) error {
	if laneCount < 1 {
		return fmt.Errorf("%w: lane count %d leaves no lanes", config.ErrInvalidConfig, laneCount)
	}
	p.maxLane = laneCount / 2
	p.lane = 0
	p.height = 0
	p.velocity = 0
	p.jumpsUsed = 0
	p.flips = 0
	p.invincible = false
	p.invincibleUntil = 0
	return nil
}

// MoveLane shifts the logical lane by delta, clamped to the road.
func (p *Player) MoveLane(delta int) {
	p.lane = core.Clamp(p.lane+delta, -p.maxLane, p.maxLane)
}

// Jump starts a jump or an air jump if jumps remain. It reports whether
// the jump happened.
func (p *Player) Jump(maxJumps int) bool {
	if p.jumpsUsed >= maxJumps {
		return false
	}
	if p.jumpsUsed > 0 {
		p.flips++
	}
	p.velocity = p.cfg.Physics.JumpForce
	p.jumpsUsed++
	return true
}

// Update integrates jump physics over dt seconds.
func (p *Player) Update(dt float64) {
	if p.Grounded() {
		return
	}
	p.height += p.velocity * dt
	p.velocity -= p.cfg.Physics.Gravity * dt

	if p.height <= 0 && p.velocity < 0 {
		p.height = 0
		p.velocity = 0
		p.jumpsUsed = 0
	}
}

// Grounded reports whether the player stands on the ground.
func (p *Player) Grounded() bool {
	return p.jumpsUsed == 0 && p.height <= 0
}

// Invincible reports whether the post-hit window is still open at now.
func (p *Player) Invincible(now time.Duration) bool {
	return p.invincible && now < p.invincibleUntil
}

// Hit opens the invincibility window starting at now.
func (p *Player) Hit(now time.Duration) {
	p.invincible = true
	p.invincibleUntil = now + time.Duration(p.cfg.Player.InvincibleMs)*time.Millisecond
}

// Pose returns the collision volume for the current state.
func (p *Player) Pose() Pose {
	return Pose{
		Lane:   p.lane,
		X:      float64(p.lane) * p.cfg.Lanes.Width,
		Y:      p.height,
		Z:      p.cfg.Player.Z,
		Height: p.cfg.Player.BodyHeight,
	}
}

// Lane returns the logical lane index.
func (p *Player) Lane() int { return p.lane }

// Height returns the feet height above ground.
func (p *Player) Height() float64 { return p.height }

// Velocity returns the vertical velocity.
func (p *Player) Velocity() float64 { return p.velocity }

// JumpsUsed returns the jumps spent since leaving the ground.
func (p *Player) JumpsUsed() int { return p.jumpsUsed }

// Flips returns the air-jump flip counter.
func (p *Player) Flips() int { return p.flips }
