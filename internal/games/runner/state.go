package runner

import "math/bits"

// Status is the coarse game phase owned by the state collaborator.
type Status uint8

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusShop
	StatusGameOver
	StatusVictory
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusShop:
		return "shop"
	case StatusGameOver:
		return "game-over"
	case StatusVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// startsRun reports whether entering Playing from s begins a fresh run.
func (s Status) startsRun() bool {
	return s == StatusMenu || s == StatusGameOver || s == StatusVictory
}

// Letters is the set of collected letter indices.
type Letters uint16

// Has reports whether index i is collected.
func (l Letters) Has(i int) bool {
	return i >= 0 && i < 16 && l&(1<<uint(i)) != 0
}

// With returns the set with index i added.
func (l Letters) With(i int) Letters {
	if i < 0 || i >= 16 {
		return l
	}
	return l | 1<<uint(i)
}

// Count returns the number of collected indices.
func (l Letters) Count() int {
	return bits.OnesCount16(uint16(l))
}

// Full reports whether all of the first n indices are collected.
func (l Letters) Full(n int) bool {
	for i := 0; i < n; i++ {
		if !l.Has(i) {
			return false
		}
	}
	return true
}

// Missing returns the uncollected indices among the first n, ascending.
func (l Letters) Missing(n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !l.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// State is the run-state collaborator the world reads from and reports to.
// The world never stores score, lives or inventory itself.
type State interface {
	Status() Status
	ScrollSpeed() float64
	Level() int
	LaneCount() int
	CollectedLetters() Letters
	HasDoubleJump() bool
	ImmortalActive() bool

	OnDamage()
	OnCollectGem(points int)
	OnCollectLetter(index int)
	OnEnterShop()
	OnDistanceUpdate(distance float64)
	// OnTick advances time-boxed effects by the clamped frame time.
	OnTick(seconds float64)
	// ActivatePower forwards the activate-power intent.
	ActivatePower()
	// OnFault halts the run after a frame panicked.
	OnFault(err error)
}
