package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// Rand is the random source used by the spawner. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// letterColors tints the letters of the target word.
var letterColors = [...]core.Color{
	core.ColorBrightBlue,
	core.ColorBrightRed,
	core.ColorBrightYellow,
	core.ColorBrightBlue,
	core.ColorBrightGreen,
	core.ColorBrightRed,
}

// SpawnInput is what the spawner needs to know about the current frame.
type SpawnInput struct {
	Distance  float64 // Total distance traveled this run
	Speed     float64 // Current scroll speed
	Level     int
	MaxLane   int
	Collected Letters
	WordLen   int
}

// Spawner procedurally fills the road ahead of the player.
type Spawner struct {
	cfg        *config.RunnerConfig
	rng        Rand
	nextLetter float64 // Distance at which the next letter is due
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg *config.RunnerConfig, rng Rand) *Spawner {
	sp := &Spawner{cfg: cfg, rng: rng}
	sp.Reset(1, 0)
	return sp
}

// Reset schedules the first letter of a level starting at distance.
func (sp *Spawner) Reset(level int, distance float64) {
	sp.nextLetter = distance + sp.LetterInterval(level)
}

// LetterInterval returns the distance between letters at the given level.
// It grows geometrically so letters get rarer as levels rise.
func (sp *Spawner) LetterInterval(level int) float64 {
	if level < 1 {
		level = 1
	}
	return sp.cfg.Spawn.LetterInterval * math.Pow(sp.cfg.Spawn.LetterGrowth, float64(level-1))
}

// NextLetter returns the distance at which the next letter is due.
func (sp *Spawner) NextLetter() float64 {
	return sp.nextLetter
}

// MinGap returns the minimum spacing behind the furthest entity.
func (sp *Spawner) MinGap(speed float64) float64 {
	return sp.cfg.Spawn.MinGapBase + sp.cfg.Spawn.MinGapPerSpeed*speed
}

// Spawn adds at most one slot of content and returns the number of
// entities added.
func (sp *Spawner) Spawn(store *Store, in SpawnInput) int {
	spawnLine := -sp.cfg.World.SpawnDistance

	furthest, ok := store.FurthestStaticZ()
	if !ok {
		furthest = sp.cfg.World.NearFieldZ
	}
	if furthest <= spawnLine {
		return 0
	}
	z := math.Min(furthest-sp.MinGap(in.Speed), spawnLine)

	if in.Distance >= sp.nextLetter {
		return sp.spawnLetter(store, in, z)
	}

	if sp.rng.Float64() >= sp.cfg.Spawn.ContentChance {
		return 0 // Deliberate gap
	}

	lane := sp.randomLane(in.MaxLane)
	if sp.rng.Float64() >= sp.cfg.Spawn.ObstacleShare {
		sp.addGem(store, lane, sp.cfg.Spawn.GemHeight, z, sp.cfg.Spawn.GemPoints)
		return 1
	}

	if in.Level >= sp.cfg.Spawn.AlienMinLevel && sp.rng.Float64() < sp.cfg.Spawn.AlienChance {
		store.Add(Entity{
			Kind:   KindAlien,
			Pos:    core.Vec3{X: sp.laneX(lane), Y: sp.cfg.Spawn.AlienHeight, Z: z},
			Active: true,
			Color:  behaviors[KindAlien].color,
		})
		return 1
	}

	store.Add(Entity{
		Kind:   KindObstacle,
		Pos:    core.Vec3{X: sp.laneX(lane), Y: 0, Z: z},
		Active: true,
		Color:  behaviors[KindObstacle].color,
	})
	if sp.rng.Float64() < sp.cfg.Spawn.BonusGemChance {
		sp.addGem(store, lane, sp.cfg.Spawn.BonusGemHeight, z, sp.cfg.Spawn.BonusGemPoints)
		return 2
	}
	return 1
}

// spawnLetter places an uncollected letter, or a bonus gem when the word is
// complete. The fallback leaves nextLetter untouched, so it fires again on
// every open slot until letters are missing again.
func (sp *Spawner) spawnLetter(store *Store, in SpawnInput, z float64) int {
	lane := sp.randomLane(in.MaxLane)
	missing := in.Collected.Missing(in.WordLen)
	if len(missing) == 0 {
		sp.addGem(store, lane, sp.cfg.Spawn.GemHeight, z, sp.cfg.Spawn.BonusGemPoints)
		return 1
	}

	idx := missing[sp.rng.Intn(len(missing))]
	store.Add(Entity{
		Kind:   KindLetter,
		Pos:    core.Vec3{X: sp.laneX(lane), Y: sp.cfg.Spawn.LetterHeight, Z: z},
		Active: true,
		Color:  letterColors[idx%len(letterColors)],
		Letter: idx,
	})
	sp.nextLetter += sp.LetterInterval(in.Level)
	return 1
}

func (sp *Spawner) addGem(store *Store, lane int, y, z float64, points int) {
	store.Add(Entity{
		Kind:   KindGem,
		Pos:    core.Vec3{X: sp.laneX(lane), Y: y, Z: z},
		Active: true,
		Color:  behaviors[KindGem].color,
		Points: points,
	})
}

// randomLane picks uniformly from [-maxLane, maxLane].
func (sp *Spawner) randomLane(maxLane int) int {
	if maxLane <= 0 {
		return 0
	}
	return sp.rng.Intn(2*maxLane+1) - maxLane
}

func (sp *Spawner) laneX(lane int) float64 {
	return float64(lane) * sp.cfg.Lanes.Width
}
