package runner

import (
	"math"
	"math/rand"
	"testing"
)

func TestLetterIntervalGrowth(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, quietRand())

	one := sp.LetterInterval(1)
	two := sp.LetterInterval(2)
	if one != cfg.Spawn.LetterInterval {
		t.Errorf("LetterInterval(1) = %v, expected %v", one, cfg.Spawn.LetterInterval)
	}
	if math.Abs(two-1.5*one) > 1e-9 {
		t.Errorf("LetterInterval(2) = %v, expected %v", two, 1.5*one)
	}
	if sp.LetterInterval(0) != one {
		t.Errorf("LetterInterval(0) = %v, expected level 1 interval", sp.LetterInterval(0))
	}
}

func TestSpawnRespectsSpawnLine(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name     string
		furthest float64
		spawns   bool
	}{
		{"well inside", -40, true},
		{"just inside", -59.9, true},
		{"on the line", -60, false},
		{"beyond", -75, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewSpawner(&cfg, &scriptedRand{floats: []float64{0}})
			s := NewStore()
			s.Add(entity(cfg, KindObstacle, 0, 0, tt.furthest))

			n := sp.Spawn(s, SpawnInput{Speed: 20, Level: 1, MaxLane: 2, WordLen: 6})
			if (n > 0) != tt.spawns {
				t.Fatalf("Spawn() = %d, expected spawn=%v", n, tt.spawns)
			}
			if !tt.spawns {
				return
			}
			z, _ := s.FurthestStaticZ()
			expected := math.Min(tt.furthest-sp.MinGap(20), -cfg.World.SpawnDistance)
			if z != expected {
				t.Errorf("new entity z = %v, expected %v", z, expected)
			}
		})
	}
}

func TestSpawnEmptyStoreUsesNearField(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, &scriptedRand{floats: []float64{0}})
	s := NewStore()

	if n := sp.Spawn(s, SpawnInput{Speed: 0, Level: 1, MaxLane: 2, WordLen: 6}); n == 0 {
		t.Fatal("Spawn() on empty store placed nothing")
	}
	z, _ := s.FurthestStaticZ()
	if z != -cfg.World.SpawnDistance {
		t.Errorf("z = %v, expected %v", z, -cfg.World.SpawnDistance)
	}
}

func TestSpawnDeliberateGap(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, quietRand())
	s := NewStore()
	if n := sp.Spawn(s, SpawnInput{Speed: 20, Level: 1, MaxLane: 2, WordLen: 6}); n != 0 {
		t.Errorf("Spawn() = %d, expected 0 for a gap roll", n)
	}
}

func TestSpawnContentMix(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name   string
		floats []float64
		level  int
		kinds  []Kind
	}{
		{"lone gem", []float64{0, 0.9}, 1, []Kind{KindGem}},
		{"obstacle at level 1", []float64{0, 0, 0.5}, 1, []Kind{KindObstacle}},
		{"obstacle with bonus gem", []float64{0, 0, 0.1}, 1, []Kind{KindObstacle, KindGem}},
		{"alien roll misses", []float64{0, 0, 0.5, 0.9}, 2, []Kind{KindObstacle}},
		{"alien at level 2", []float64{0, 0, 0.1}, 2, []Kind{KindAlien}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := NewSpawner(&cfg, &scriptedRand{floats: tt.floats})
			s := NewStore()
			sp.Spawn(s, SpawnInput{Speed: 20, Level: tt.level, MaxLane: 2, WordLen: 6})

			got := s.Entities()
			if len(got) != len(tt.kinds) {
				t.Fatalf("spawned %d entities, expected %d", len(got), len(tt.kinds))
			}
			for i, k := range tt.kinds {
				if got[i].Kind != k {
					t.Errorf("entity %d kind = %s, expected %s", i, got[i].Kind, k)
				}
			}
		})
	}
}

func TestSpawnLanesStayOnRoad(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, rand.New(rand.NewSource(7)))
	seen := map[int]bool{}

	for i := 0; i < 500; i++ {
		s := NewStore()
		sp.Spawn(s, SpawnInput{Speed: 20, Level: 2, MaxLane: 2, WordLen: 6})
		s.ForEach(func(e *Entity) {
			lane := int(math.Round(e.Pos.X / cfg.Lanes.Width))
			if lane < -2 || lane > 2 {
				t.Fatalf("entity spawned in lane %d", lane)
			}
			seen[lane] = true
		})
	}
	if len(seen) != 5 {
		t.Errorf("lanes used = %v, expected all 5", seen)
	}
}

func TestSpawnLetterPicksMissingIndex(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, &scriptedRand{ints: []int{2, 0}})
	s := NewStore()

	var collected Letters
	for _, i := range []int{0, 1, 2, 4, 5} {
		collected = collected.With(i)
	}
	due := sp.NextLetter()
	n := sp.Spawn(s, SpawnInput{Distance: due, Speed: 20, Level: 1, MaxLane: 2, Collected: collected, WordLen: 6})
	if n != 1 {
		t.Fatalf("Spawn() = %d, expected 1", n)
	}

	e := s.Entities()[0]
	if e.Kind != KindLetter || e.Letter != 3 {
		t.Errorf("spawned %s index %d, expected letter 3", e.Kind, e.Letter)
	}
	if sp.NextLetter() != due+sp.LetterInterval(1) {
		t.Errorf("NextLetter() = %v, expected %v", sp.NextLetter(), due+sp.LetterInterval(1))
	}
}

func TestSpawnCompleteWordFallsBackToGems(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, &scriptedRand{})
	var all Letters
	for i := 0; i < 6; i++ {
		all = all.With(i)
	}
	due := sp.NextLetter()

	for i := 0; i < 3; i++ {
		s := NewStore()
		sp.Spawn(s, SpawnInput{Distance: due + 1, Speed: 20, Level: 1, MaxLane: 2, Collected: all, WordLen: 6})
		if s.CountKind(KindLetter, false) != 0 {
			t.Fatal("letter spawned with the word complete")
		}
		got := s.Entities()
		if len(got) != 1 || got[0].Kind != KindGem || got[0].Points != cfg.Spawn.BonusGemPoints {
			t.Fatalf("fallback spawned %+v, expected one bonus gem", got)
		}
	}
	// The letter timer does not advance on the fallback path.
	if sp.NextLetter() != due {
		t.Errorf("NextLetter() = %v, expected %v", sp.NextLetter(), due)
	}
}

func TestSpawnerReset(t *testing.T) {
	cfg := testConfig()
	sp := NewSpawner(&cfg, quietRand())
	sp.Reset(2, 500)
	if expected := 500 + sp.LetterInterval(2); sp.NextLetter() != expected {
		t.Errorf("NextLetter() = %v, expected %v", sp.NextLetter(), expected)
	}
}
