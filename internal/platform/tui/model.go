package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
	"github.com/vovakirdan/lane-runner/internal/registry"
	"github.com/vovakirdan/lane-runner/internal/replay"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// Model is the Bubble Tea model for a single run of a game mode.
// It is used directly by `play` and wrapped by SessionModel over SSH.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	input    core.InputFrame
	state    core.GameState
	keys     *KeyMapper
	recorder *replay.Recorder
	logger   *log.Logger

	allowBack bool
	quitting  bool
	back      bool
	saved     bool
}

// NewModel resets game with cfg and wraps it. A zero seed is replaced with
// the current time so Config reports the seed actually used.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	game.Reset(cfg)

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		input:  core.NewInputFrame(),
		state:  game.State(),
		keys:   NewKeyMapper(),
		logger: logger,
	}
}

// WithRecorder returns a copy of m that writes every stepped frame to r.
func (m Model) WithRecorder(r *replay.Recorder) Model {
	m.recorder = r
	return m
}

// WithBackToMenu lets Back leave the run once it is paused or finished.
func (m Model) WithBackToMenu() Model {
	m.allowBack = true
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The simulation does not depend on the screen, so no reset.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionBack && m.allowBack && (m.state.Finished() || m.state.Paused) {
		m.back = true
		return m, nil
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}

	if m.recorder != nil {
		if err := m.recorder.Record(m.input); err != nil {
			m.logger.Error("replay recording stopped", "error", err)
			m.recorder = nil
		}
	}

	result := m.game.Step(m.input)
	m.state = result.State

	if m.state.Finished() {
		if !m.saved {
			m.saveRun()
			m.saved = true
		}
	} else {
		m.saved = false
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Failures only cost the history entry.
func (m Model) saveRun() {
	if m.store == nil || m.state.Score <= 0 {
		return
	}
	run := RunRecord(m.game, m.state, m.config.Seed)
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "mode", run.Mode, "error", err)
		return
	}
	m.logger.Info("run saved", "mode", run.Mode, "score", run.Score, "level", run.Level)
}

// RunRecord turns the final state of a run of game into a storage row.
func RunRecord(game registry.Game, st core.GameState, seed int64) storage.Run {
	run := storage.Run{
		Mode:     game.ID(),
		Score:    st.Score,
		Distance: st.Distance,
		Level:    st.Level,
		Victory:  st.Victory,
		Seed:     seed,
	}
	if rg, ok := game.(*runner.Game); ok && rg.Session() != nil {
		run.Gems = rg.Session().Gems()
	}
	return run
}

func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Config returns the runtime config, including the resolved seed.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the run.
func (m Model) BackToMenu() bool {
	return m.back
}

// Options configures a local run started with Run.
type Options struct {
	Store      *storage.Store
	Logger     *log.Logger
	RecordPath string // zstd replay file, empty to skip recording
}

// Run plays game in the terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, opts.Store, cfg, opts.Logger)

	var rec *replay.Recorder
	if opts.RecordPath != "" {
		rg, ok := game.(*runner.Game)
		if !ok {
			return fmt.Errorf("tui: mode %q does not support recording", game.ID())
		}
		header, err := replay.NewHeader(game.ID(), model.Config(), rg.Config())
		if err != nil {
			return err
		}
		rec, err = replay.Create(opts.RecordPath, header)
		if err != nil {
			return err
		}
		model = model.WithRecorder(rec)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	if rec != nil {
		if err := rec.Close(); err != nil && runErr == nil {
			runErr = fmt.Errorf("tui: finish replay: %w", err)
		}
	}
	return runErr
}
