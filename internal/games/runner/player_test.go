package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

func TestJumpWithoutDoubleJump(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)

	if !p.Jump(1) {
		t.Fatal("first Jump() should succeed")
	}
	p.Update(1.0 / 60)
	if p.Jump(1) {
		t.Error("air Jump() without double jump should fail")
	}
	if p.JumpsUsed() != 1 {
		t.Errorf("JumpsUsed() = %d, expected 1", p.JumpsUsed())
	}
	if p.Flips() != 0 {
		t.Errorf("Flips() = %d, expected 0", p.Flips())
	}
}

func TestDoubleJump(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)

	p.Jump(2)
	for i := 0; i < 10; i++ {
		p.Update(1.0 / 60)
	}
	if !p.Jump(2) {
		t.Fatal("air Jump() with double jump should succeed")
	}
	if p.Velocity() != cfg.Physics.JumpForce {
		t.Errorf("Velocity() = %v, expected %v", p.Velocity(), cfg.Physics.JumpForce)
	}
	if p.Flips() != 1 {
		t.Errorf("Flips() = %d, expected 1", p.Flips())
	}
	if p.Jump(2) {
		t.Error("third Jump() should fail")
	}
}

func TestJumpLands(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	p.Jump(1)

	peak := 0.0
	for i := 0; i < 120 && !p.Grounded(); i++ {
		p.Update(1.0 / 60)
		peak = max(peak, p.Height())
	}
	if !p.Grounded() {
		t.Fatal("player never landed")
	}
	if p.Height() != 0 || p.Velocity() != 0 || p.JumpsUsed() != 0 {
		t.Errorf("after landing height=%v velocity=%v jumps=%d, expected zeros", p.Height(), p.Velocity(), p.JumpsUsed())
	}
	// Apex is v^2 / 2g for the configured physics.
	apex := cfg.Physics.JumpForce * cfg.Physics.JumpForce / (2 * cfg.Physics.Gravity)
	if peak < apex*0.9 || peak > apex*1.1 {
		t.Errorf("peak height %v, expected about %v", peak, apex)
	}
	if p.Jump(1) != true {
		t.Error("Jump() after landing should succeed")
	}
}

func TestMoveLaneClamps(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)

	tests := []struct {
		name  string
		moves []int
		lane  int
	}{
		{"left once", []int{-1}, -1},
		{"right past edge", []int{1, 1, 1, 1}, 2},
		{"left past edge", []int{-1, -1, -1, -1, -1}, -2},
		{"back to center", []int{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range tt.moves {
				p.MoveLane(d)
			}
			if p.Lane() != tt.lane {
				t.Errorf("Lane() = %d, expected %d", p.Lane(), tt.lane)
			}
		})
	}
}

func TestPlayerReset(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	p.MoveLane(2)
	p.Jump(1)
	p.Hit(0)

	if err := p.Reset(3); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if p.Lane() != 0 || !p.Grounded() || p.Invincible(0) {
		t.Errorf("Reset() left lane=%d grounded=%v invincible=%v", p.Lane(), p.Grounded(), p.Invincible(0))
	}
	p.MoveLane(5)
	if p.Lane() != 1 {
		t.Errorf("Lane() with 3 lanes = %d, expected 1", p.Lane())
	}

	err := p.Reset(0)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Reset(0) = %v, expected ErrInvalidConfig", err)
	}
}

func TestInvincibilityWindow(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	window := time.Duration(cfg.Player.InvincibleMs) * time.Millisecond

	if p.Invincible(0) {
		t.Error("fresh player should not be invincible")
	}
	p.Hit(time.Second)
	if !p.Invincible(time.Second + window - time.Millisecond) {
		t.Error("player should be invincible inside the window")
	}
	if p.Invincible(time.Second + window) {
		t.Error("player should be vulnerable once the window closes")
	}
}

func TestPoseBody(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	p.MoveLane(-1)

	pose := p.Pose()
	if pose.X != -cfg.Lanes.Width {
		t.Errorf("Pose().X = %v, expected %v", pose.X, -cfg.Lanes.Width)
	}
	if pose.Body() != core.NewSpan(0, cfg.Player.BodyHeight) {
		t.Errorf("Body() = %+v, expected [0, %v]", pose.Body(), cfg.Player.BodyHeight)
	}
}

func TestIntentsFromInput(t *testing.T) {
	f := core.NewInputFrame()
	f.Set(core.ActionLeft)
	f.Set(core.ActionJump)
	f.Set(core.ActionPause)

	in := IntentsFromInput(f)
	if !in.Has(IntentLeft) || !in.Has(IntentJump) {
		t.Errorf("IntentsFromInput() = %b, expected left and jump", in)
	}
	if in.Has(IntentRight) || in.Has(IntentPower) {
		t.Errorf("IntentsFromInput() = %b, unexpected intents", in)
	}
	if back := IntentsFromInput(in.Frame()); back != in {
		t.Errorf("Frame() round trip = %b, expected %b", back, in)
	}
}
