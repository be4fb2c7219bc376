package runner

import (
	"testing"
	"time"
)

// resolveOnce advances s by one frame at speed and resolves against p.
func resolveOnce(t *testing.T, s *Store, p *Player, speed, dt float64, immortal bool) ([]Event, collisionResult) {
	t.Helper()
	cfg := *p.cfg
	moves := NewStepper(&cfg).Advance(s, speed, dt)
	pose := p.Pose()
	var q EventQueue
	res := NewResolver(&cfg).Resolve(s, moves, &pose, p, 0, immortal, &q)
	return q.Drain(), res
}

func TestObstacleHitsOnce(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	s := NewStore()
	id := s.Add(entity(cfg, KindObstacle, 0, 0, -1.5))

	evs, res := resolveOnce(t, s, p, 20, 0.05, false)
	if got := countEvents[DamageEvent](evs); got != 1 {
		t.Fatalf("DamageEvent count = %d, expected 1", got)
	}
	if got := countEvents[DamageFlashEvent](evs); got != 1 {
		t.Errorf("DamageFlashEvent count = %d, expected 1", got)
	}
	if !res.damaged || res.consumed != 1 {
		t.Errorf("result = %+v, expected one damaging consume", res)
	}
	e, _ := s.Get(id)
	if e.Active {
		t.Error("obstacle still active after hit")
	}

	// The consumed obstacle is still within reach but never hits again.
	p.invincible = false
	evs, _ = resolveOnce(t, s, p, 20, 0.05, false)
	if got := countEvents[DamageEvent](evs); got != 0 {
		t.Errorf("second pass DamageEvent count = %d, expected 0", got)
	}
}

func TestObstacleInOtherLaneMisses(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	s := NewStore()
	s.Add(entity(cfg, KindObstacle, 1, 0, -0.5))

	evs, res := resolveOnce(t, s, p, 20, 0.05, false)
	if len(evs) != 0 || res.consumed != 0 {
		t.Errorf("events = %v, expected none", evs)
	}
}

func TestJumpClearsObstacle(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	p.height = cfg.Collision.ObstacleHeight + 0.1
	p.jumpsUsed = 1
	s := NewStore()
	s.Add(entity(cfg, KindObstacle, 0, 0, -0.5))

	evs, _ := resolveOnce(t, s, p, 20, 0.05, false)
	if got := countEvents[DamageEvent](evs); got != 0 {
		t.Errorf("DamageEvent count = %d, expected 0 while above the obstacle", got)
	}
}

func TestInvinciblePlayerConsumesWithoutDamage(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		hit      bool
		immortal bool
	}{
		{"post-hit window", true, false},
		{"immortality", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(&cfg)
			if tt.hit {
				p.Hit(0)
			}
			s := NewStore()
			alien := entity(cfg, KindAlien, 0, cfg.Spawn.AlienHeight, -0.5)
			alien.HasFired = true
			id := s.Add(alien)

			evs, res := resolveOnce(t, s, p, 20, 0.05, tt.immortal)
			if got := countEvents[DamageEvent](evs); got != 0 {
				t.Errorf("DamageEvent count = %d, expected 0", got)
			}
			if got := countEvents[BurstEvent](evs); got != 1 {
				t.Errorf("BurstEvent count = %d, expected 1", got)
			}
			if e, _ := s.Get(id); e.Active || res.consumed != 1 {
				t.Error("alien should be consumed")
			}
		})
	}
}

func TestMissileFiredThisFrameIsResolved(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	s := NewStore()
	// An unfired alien already close to the player fires on this frame;
	// both the alien and its missile reach the player.
	s.Add(entity(cfg, KindAlien, 0, cfg.Spawn.AlienHeight, -0.8))

	evs, res := resolveOnce(t, s, p, 10, 0.02, false)
	if s.CountKind(KindMissile, false) != 1 {
		t.Fatal("alien did not fire")
	}
	if res.consumed != 2 {
		t.Errorf("consumed = %d, expected alien and missile", res.consumed)
	}
	if got := countEvents[DamageEvent](evs); got != 1 {
		t.Errorf("DamageEvent count = %d, expected 1", got)
	}
}

func TestPortalIgnoresLane(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	p.MoveLane(2)
	s := NewStore()
	id := s.Add(entity(cfg, KindShopPortal, 0, 0, -2.5))

	evs, _ := resolveOnce(t, s, p, 20, 0.05, false)
	if got := countEvents[EnterShopEvent](evs); got != 1 {
		t.Fatalf("EnterShopEvent count = %d, expected 1", got)
	}
	if e, _ := s.Get(id); e.Active {
		t.Error("portal should be consumed")
	}
	evs, _ = resolveOnce(t, s, p, 20, 0.05, false)
	if got := countEvents[EnterShopEvent](evs); got != 0 {
		t.Errorf("second pass EnterShopEvent count = %d, expected 0", got)
	}
}

func TestCollectibles(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		kind    Kind
		y       float64
		height  float64
		collect bool
	}{
		{"gem on the ground", KindGem, cfg.Spawn.GemHeight, 0, true},
		{"bonus gem out of reach", KindGem, cfg.Spawn.BonusGemHeight, 0, false},
		{"bonus gem while jumping", KindGem, cfg.Spawn.BonusGemHeight, 1.5, true},
		{"letter", KindLetter, cfg.Spawn.LetterHeight, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(&cfg)
			if tt.height > 0 {
				p.height = tt.height
				p.jumpsUsed = 1
			}
			s := NewStore()
			e := entity(cfg, tt.kind, 0, tt.y, -0.5)
			e.Points = 50
			e.Letter = 4
			s.Add(e)

			evs, res := resolveOnce(t, s, p, 20, 0.05, false)
			if (res.consumed == 1) != tt.collect {
				t.Fatalf("consumed = %d, expected collect=%v", res.consumed, tt.collect)
			}
			if !tt.collect {
				return
			}
			switch tt.kind {
			case KindGem:
				if countEvents[GemCollectedEvent](evs) != 1 {
					t.Error("missing GemCollectedEvent")
				}
			case KindLetter:
				if countEvents[LetterCollectedEvent](evs) != 1 || !res.letters.Has(4) {
					t.Error("missing LetterCollectedEvent for index 4")
				}
			}
		})
	}
}

func TestSweptCollisionCatchesLargeSteps(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	s := NewStore()
	s.Add(entity(cfg, KindGem, 0, cfg.Spawn.GemHeight, -4))

	// One step moves the gem from z=-4 to z=+4, straight through the player.
	_, res := resolveOnce(t, s, p, 80, 0.1, false)
	if res.consumed != 1 {
		t.Errorf("consumed = %d, expected the gem to be collected", res.consumed)
	}
}

func TestResolveWithoutPoseIsNoop(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(&cfg)
	s := NewStore()
	s.Add(entity(cfg, KindObstacle, 0, 0, 0))

	var q EventQueue
	res := NewResolver(&cfg).Resolve(s, nil, nil, p, time.Second, false, &q)
	if res.consumed != 0 || q.Len() != 0 {
		t.Errorf("Resolve(nil pose) consumed %d and queued %d events", res.consumed, q.Len())
	}
}
