// Package runner implements a three-lane style endless runner: the player
// holds a fixed forward position while obstacles, enemies and collectibles
// scroll toward them.
package runner

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// FrameFault wraps a panic recovered from a frame.
type FrameFault struct {
	Frame uint64
	Value any
	Stack []byte
}

func (f *FrameFault) Error() string {
	return fmt.Sprintf("runner: frame %d panicked: %v", f.Frame, f.Value)
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for faults and run transitions.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// World is the frame orchestrator. Step is called from a single goroutine;
// Snapshot may be called concurrently and always sees a committed frame.
type World struct {
	cfg    config.RunnerConfig
	state  State
	logger *log.Logger

	player   *Player
	stepper  *Stepper
	resolver *Resolver
	spawner  *Spawner

	queue     EventQueue
	listeners []Listener

	// Step-goroutine bookkeeping.
	lastStatus Status
	restart    bool
	lastLevel  int
	distance   float64
	clock      time.Duration
	frame      uint64

	// Committed view, guarded by mu.
	mu        sync.RWMutex
	live      *Store
	committed Snapshot
}

// NewWorld validates cfg and builds a world bound to state.
func NewWorld(cfg config.RunnerConfig, state State, rng Rand, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("runner: nil state collaborator")
	}
	if rng == nil {
		return nil, fmt.Errorf("runner: nil random source")
	}

	w := &World{
		cfg:        cfg,
		state:      state,
		logger:     log.Default(),
		live:       NewStore(),
		lastStatus: StatusMenu,
	}
	w.player = NewPlayer(&w.cfg)
	w.stepper = NewStepper(&w.cfg)
	w.resolver = NewResolver(&w.cfg)
	w.spawner = NewSpawner(&w.cfg, rng)

	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Restart makes the next Playing frame begin a fresh run even when the
// state went from Playing to a finished phase and back between two steps.
func (w *World) Restart() {
	w.restart = true
}

// Subscribe registers a listener. Call during setup, before stepping.
func (w *World) Subscribe(l Listener) {
	w.listeners = append(w.listeners, l)
}

// Step runs one frame. While the state is not Playing the entity set is
// frozen. A panic inside the frame halts the run through State.OnFault and
// is returned as a *FrameFault; it never escapes to the caller.
func (w *World) Step(dt time.Duration, in Intents) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault := &FrameFault{Frame: w.frame, Value: r, Stack: debug.Stack()}
		w.logger.Error("frame fault", "frame", fault.Frame, "panic", r)
		w.queue.Drain()
		w.state.OnFault(fault)
		w.lastStatus = w.state.Status()
		w.emit(FaultEvent{Err: fault})
		err = fault
	}()

	status := w.state.Status()
	entering := status == StatusPlaying && w.lastStatus != StatusPlaying
	if status == StatusPlaying && (w.restart || entering && w.lastStatus.startsRun()) {
		w.restart = false
		if err := w.reset(); err != nil {
			w.logger.Error("run reset failed", "error", err)
			w.state.OnFault(err)
			w.lastStatus = w.state.Status()
			return err
		}
	}
	w.lastStatus = status

	if status != StatusPlaying {
		w.publishStatus(status)
		return nil
	}

	if level := w.state.Level(); level > w.lastLevel {
		w.levelUp(level)
	}

	w.runFrame(w.clampDT(dt), in)
	w.dispatch()
	// Listeners may end the run; a restart on the next frame must reset.
	w.lastStatus = w.state.Status()
	return nil
}

// runFrame executes the fixed phase order on a working copy and commits it.
func (w *World) runFrame(dt time.Duration, in Intents) {
	secs := dt.Seconds()
	w.clock += dt
	w.state.OnTick(secs)

	work := w.live.Clone()

	// Player
	if in.Has(IntentLeft) && !in.Has(IntentRight) {
		w.player.MoveLane(-1)
	}
	if in.Has(IntentRight) && !in.Has(IntentLeft) {
		w.player.MoveLane(1)
	}
	if in.Has(IntentJump) {
		w.player.Jump(w.maxJumps())
	}
	if in.Has(IntentPower) {
		w.state.ActivatePower()
	}
	w.player.Update(secs)

	// Motion
	speed := w.state.ScrollSpeed()
	if speed < 0 {
		speed = 0
	}
	moves := w.stepper.Advance(work, speed, secs)
	w.distance += speed * secs

	// Collision
	pose := w.player.Pose()
	res := w.resolver.Resolve(work, moves, &pose, w.player, w.clock, w.state.ImmortalActive(), &w.queue)
	w.stepper.Cull(work)

	// Spawn
	w.spawner.Spawn(work, SpawnInput{
		Distance:  w.distance,
		Speed:     speed,
		Level:     w.state.Level(),
		MaxLane:   w.player.maxLane,
		Collected: w.state.CollectedLetters() | res.letters,
		WordLen:   config.WordLength,
	})

	w.queue.Push(DistanceEvent{Distance: w.distance})
	w.frame++
	w.commit(work, StatusPlaying)
}

// reset clears the arena and the player for a fresh run.
func (w *World) reset() error {
	if err := w.player.Reset(w.state.LaneCount()); err != nil {
		return err
	}
	w.distance = 0
	w.clock = 0
	w.lastLevel = w.state.Level()
	w.spawner.Reset(w.lastLevel, 0)
	w.queue.Drain()

	store := w.live.Clone()
	store.Clear()
	w.commit(store, StatusPlaying)
	w.logger.Debug("run started", "level", w.lastLevel, "lanes", w.state.LaneCount())
	return nil
}

// levelUp prunes far content and opens a shop portal ahead.
func (w *World) levelUp(level int) {
	w.lastLevel = level
	w.spawner.Reset(level, w.distance)

	cutoff := w.cfg.World.PortalCutoff
	work := w.live.Clone()
	pruned := work.RemoveWhere(func(e *Entity) bool {
		return e.Pos.Z < cutoff
	})
	if level > 1 && work.CountKind(KindShopPortal, false) == 0 {
		work.Add(Entity{
			Kind:   KindShopPortal,
			Pos:    core.Vec3{Z: -w.cfg.World.SpawnDistance},
			Active: true,
			Color:  behaviors[KindShopPortal].color,
		})
	}
	w.commit(work, StatusPlaying)
	w.logger.Debug("level up", "level", level, "pruned", pruned)
}

// commit publishes a finished frame.
func (w *World) commit(store *Store, status Status) {
	snap := w.buildSnapshot(store, status)
	w.mu.Lock()
	w.live = store
	w.committed = snap
	w.mu.Unlock()
}

// publishStatus refreshes only the status of the committed view.
func (w *World) publishStatus(status Status) {
	w.mu.Lock()
	w.committed.Status = status.String()
	w.mu.Unlock()
}

// dispatch delivers queued events: first to the state collaborator, then
// to listeners.
func (w *World) dispatch() {
	for _, ev := range w.queue.Drain() {
		switch e := ev.(type) {
		case DamageEvent:
			w.state.OnDamage()
		case GemCollectedEvent:
			w.state.OnCollectGem(e.Points)
		case LetterCollectedEvent:
			w.state.OnCollectLetter(e.Index)
		case EnterShopEvent:
			w.state.OnEnterShop()
		case DistanceEvent:
			w.state.OnDistanceUpdate(e.Distance)
		}
		w.emit(ev)
	}
}

func (w *World) emit(ev Event) {
	for _, l := range w.listeners {
		l(ev)
	}
}

func (w *World) clampDT(dt time.Duration) time.Duration {
	limit := time.Duration(w.cfg.Physics.MaxFrameMs) * time.Millisecond
	if dt < 0 {
		return 0
	}
	if dt > limit {
		return limit
	}
	return dt
}

func (w *World) maxJumps() int {
	if w.state.HasDoubleJump() {
		return 2
	}
	return 1
}

// Distance returns the distance traveled this run.
func (w *World) Distance() float64 {
	return w.distance
}

// Player exposes the player controller for presentation and tests.
func (w *World) Player() *Player {
	return w.player
}

// Spawner exposes the spawn policy for presentation and tests.
func (w *World) Spawner() *Spawner {
	return w.spawner
}

// Config returns the world configuration.
func (w *World) Config() config.RunnerConfig {
	return w.cfg
}
