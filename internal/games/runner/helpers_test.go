package runner

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// fakeState is a scriptable State that records every callback.
type fakeState struct {
	status     Status
	speed      float64
	level      int
	lanes      int
	letters    Letters
	doubleJump bool
	immortal   bool

	panicOnSpeed bool
	endOnDamage  bool

	damage   int
	gems     []int
	collects []int
	shops    int
	distance float64
	ticks    int
	powers   int
	fault    error
}

func newFakeState() *fakeState {
	return &fakeState{status: StatusPlaying, speed: 20, level: 1, lanes: 5}
}

func (f *fakeState) Status() Status { return f.status }

func (f *fakeState) ScrollSpeed() float64 {
	if f.panicOnSpeed {
		panic("speed table corrupted")
	}
	return f.speed
}

func (f *fakeState) Level() int                { return f.level }
func (f *fakeState) LaneCount() int            { return f.lanes }
func (f *fakeState) CollectedLetters() Letters { return f.letters }
func (f *fakeState) HasDoubleJump() bool       { return f.doubleJump }
func (f *fakeState) ImmortalActive() bool      { return f.immortal }
func (f *fakeState) OnDamage() {
	f.damage++
	if f.endOnDamage {
		f.status = StatusGameOver
	}
}
func (f *fakeState) OnCollectGem(points int) { f.gems = append(f.gems, points) }
func (f *fakeState) OnCollectLetter(index int) {
	f.collects = append(f.collects, index)
	f.letters = f.letters.With(index)
}
func (f *fakeState) OnEnterShop() {
	f.shops++
	f.status = StatusShop
}
func (f *fakeState) OnDistanceUpdate(d float64) { f.distance = d }
func (f *fakeState) OnTick(float64)             { f.ticks++ }
func (f *fakeState) ActivatePower()             { f.powers++ }
func (f *fakeState) OnFault(err error) {
	f.fault = err
	f.status = StatusGameOver
}

// scriptedRand replays fixed values, repeating the last one when exhausted.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

// quietRand never places content: every slot is a deliberate gap.
func quietRand() *scriptedRand {
	return &scriptedRand{floats: []float64{0.99}}
}

func testConfig() config.RunnerConfig {
	return config.DefaultRunnerConfig()
}

func newTestWorld(t testing.TB, state State, rng Rand) *World {
	t.Helper()
	w, err := NewWorld(testConfig(), state, rng)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// entity builds an active entity of kind k in lane at depth z.
func entity(cfg config.RunnerConfig, k Kind, lane int, y, z float64) Entity {
	return Entity{
		Kind:   k,
		Pos:    core.Vec3{X: float64(lane) * cfg.Lanes.Width, Y: y, Z: z},
		Active: true,
		Color:  behaviors[k].color,
	}
}

// countEvents returns how many events of type T are in evs.
func countEvents[T Event](evs []Event) int {
	n := 0
	for _, ev := range evs {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}
