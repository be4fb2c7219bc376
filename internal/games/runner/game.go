package runner

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// Mode IDs registered with the game registry.
const (
	ModeCampaign = "runner"
	ModeEndless  = "runner_endless"
)

const (
	flashFrames = 8
	burstFrames = 12
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// burst is a short-lived cosmetic marker left where an entity was consumed.
type burst struct {
	pos   core.Vec3
	color core.Color
	ttl   int
}

// Game adapts the world and its session to the platform's game interface.
type Game struct {
	id      string
	title   string
	endless bool

	runtime  core.RuntimeConfig
	override *config.RunnerConfig
	cfg      config.RunnerConfig
	logger   *log.Logger

	session *Session
	world   *World
	dt      time.Duration

	paused     bool
	shopCursor int
	shopMsg    string
	flash      int
	bursts     []burst
	listeners  []Listener
	tick       int
}

// New creates a runner game. endless disables the final level.
func New(endless bool) *Game {
	g := &Game{id: ModeCampaign, title: "Lane Runner", endless: endless, logger: log.Default()}
	if endless {
		g.id = ModeEndless
		g.title = "Lane Runner (endless)"
	}
	return g
}

// Configure pins the config used by the next Reset, bypassing the loader.
// Replays use it to rerun with the recorded settings.
func (g *Game) Configure(cfg config.RunnerConfig) {
	g.override = &cfg
}

// SetLogger replaces the logger passed to the world.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Subscribe registers a listener that survives resets.
func (g *Game) Subscribe(l Listener) {
	g.listeners = append(g.listeners, l)
	if g.world != nil {
		g.world.Subscribe(l)
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.endless {
		return "dodge and collect forever, speed keeps rising"
	}
	return "spell the word on each level to reach the finish"
}

// Reset loads the config and builds a fresh session and world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(g.runtime.TickRate)

	g.cfg = g.loadConfig()
	g.session = NewSession(g.cfg, g.endless)

	rng := rand.New(rand.NewSource(runtime.Seed)) //nolint:gosec // Deterministic gameplay RNG
	world, err := NewWorld(g.cfg, g.session, rng, WithLogger(g.logger))
	if err != nil {
		// loadConfig only hands out validated configs.
		g.logger.Error("world setup failed, using defaults", "error", err)
		g.cfg = config.DefaultRunnerConfig()
		g.session = NewSession(g.cfg, g.endless)
		world, _ = NewWorld(g.cfg, g.session, rng, WithLogger(g.logger))
	}
	g.world = world
	g.world.Subscribe(g.onEvent)
	for _, l := range g.listeners {
		g.world.Subscribe(l)
	}

	g.paused = false
	g.shopCursor = 0
	g.shopMsg = ""
	g.flash = 0
	g.bursts = nil
	g.tick = 0
}

func (g *Game) loadConfig() config.RunnerConfig {
	if g.override != nil {
		err := g.override.Validate()
		if err == nil {
			return *g.override
		}
		g.logger.Warn("pinned config rejected", "error", err)
	}

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		g.logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.decay()

	switch g.session.Status() {
	case StatusMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.start()
		}
	case StatusGameOver, StatusVictory:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.start()
		}
	case StatusShop:
		g.stepShop(in)
	case StatusPlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var intents Intents
	if g.session.Status() == StatusPlaying {
		intents = IntentsFromInput(in)
	}
	//nolint:errcheck // Faults are logged by the world and end the run
	g.world.Step(g.dt, intents)

	return core.StepResult{State: g.State()}
}

func (g *Game) start() {
	g.session.Start()
	g.world.Restart()
	g.paused = false
	g.bursts = nil
}

func (g *Game) stepShop(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.shopCursor = (g.shopCursor + len(Items) - 1) % len(Items)
		g.shopMsg = ""
	}
	if in.Has(core.ActionRight) {
		g.shopCursor = (g.shopCursor + 1) % len(Items)
		g.shopMsg = ""
	}
	if in.Has(core.ActionJump) {
		item := Items[g.shopCursor]
		if err := g.session.Buy(item); err != nil {
			g.shopMsg = err.Error()
		} else {
			g.shopMsg = "bought " + item.String()
		}
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
		g.session.Resume()
		g.shopMsg = ""
	}
}

// onEvent keeps the cosmetic state the renderer needs.
func (g *Game) onEvent(ev Event) {
	switch e := ev.(type) {
	case DamageFlashEvent:
		g.flash = flashFrames
	case BurstEvent:
		g.bursts = append(g.bursts, burst{pos: e.Pos, color: e.Color, ttl: burstFrames})
	}
}

func (g *Game) decay() {
	if g.flash > 0 {
		g.flash--
	}
	kept := g.bursts[:0]
	for _, b := range g.bursts {
		b.ttl--
		if b.ttl > 0 {
			kept = append(kept, b)
		}
	}
	g.bursts = kept
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	status := g.session.Status()
	return core.GameState{
		Score:    g.session.Score(),
		Distance: g.session.Distance(),
		Level:    g.session.Level(),
		Victory:  status == StatusVictory,
		GameOver: status == StatusGameOver,
		Paused:   g.paused,
	}
}

// Session returns the run state of the current game.
func (g *Game) Session() *Session {
	return g.session
}

// World returns the orchestrator of the current game.
func (g *Game) World() *World {
	return g.world
}

// Snapshot returns the last committed frame.
func (g *Game) Snapshot() Snapshot {
	return g.world.Snapshot()
}

// Config returns the config in use since the last Reset.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// FrameDuration returns the fixed simulation step.
func (g *Game) FrameDuration() time.Duration {
	return g.dt
}

// Frame converts intents back to platform actions, for bots.
func (in Intents) Frame() core.InputFrame {
	f := core.NewInputFrame()
	if in.Has(IntentLeft) {
		f.Set(core.ActionLeft)
	}
	if in.Has(IntentRight) {
		f.Set(core.ActionRight)
	}
	if in.Has(IntentJump) {
		f.Set(core.ActionJump)
	}
	if in.Has(IntentPower) {
		f.Set(core.ActionPower)
	}
	return f
}

func init() {
	registry.Register(ModeCampaign, func() registry.Game { return New(false) })
	registry.Register(ModeEndless, func() registry.Game { return New(true) })
}
