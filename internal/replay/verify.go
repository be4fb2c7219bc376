package replay

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
)

// Result summarizes a re-simulated run.
type Result struct {
	Frames   int
	Score    int
	Distance float64
	Level    int
	Status   string
	Victory  bool
}

// Verify re-simulates a recorded run and reports where it ended.
func Verify(h Header, frames []core.InputFrame, logger *log.Logger) (Result, error) {
	var endless bool
	switch h.Mode {
	case runner.ModeCampaign:
	case runner.ModeEndless:
		endless = true
	default:
		return Result{}, fmt.Errorf("replay: unknown mode %q", h.Mode)
	}

	cfg, err := h.RunnerConfig()
	if err != nil {
		return Result{}, err
	}

	g := runner.New(endless)
	if logger != nil {
		g.SetLogger(logger)
	}
	g.Configure(cfg)
	g.Reset(h.Runtime())

	for _, f := range frames {
		g.Step(f)
	}

	st := g.State()
	return Result{
		Frames:   len(frames),
		Score:    st.Score,
		Distance: st.Distance,
		Level:    st.Level,
		Status:   g.Session().Status().String(),
		Victory:  st.Victory,
	}, nil
}
