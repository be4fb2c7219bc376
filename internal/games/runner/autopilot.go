package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// Autopilot is a deterministic bot that reads committed snapshots and
// dodges hazards. It drives headless simulations and the watch server.
type Autopilot struct {
	cfg       *config.RunnerConfig
	Lookahead float64 // How far ahead hazards are considered
	JumpLead  float64 // Distance at which an unavoidable obstacle is jumped
}

// NewAutopilot creates a bot with default reaction distances.
func NewAutopilot(cfg *config.RunnerConfig) *Autopilot {
	return &Autopilot{cfg: cfg, Lookahead: 25, JumpLead: 6}
}

// Decide picks the intents for the next frame.
func (a *Autopilot) Decide(snap Snapshot) Intents {
	var in Intents
	maxLane := a.cfg.MaxLane()
	lane := snap.Player.Lane
	playerZ := a.cfg.Player.Z

	nearest := make(map[int]float64) // lane -> distance to closest hazard
	treasure := make(map[int]float64)
	for _, e := range snap.Entities {
		if !e.Active {
			continue
		}
		dist := playerZ - e.Pos.Z
		if dist < -1 || dist > a.Lookahead {
			continue
		}
		l := int(math.Round(e.Pos.X / a.cfg.Lanes.Width))
		switch e.behavior().outcome {
		case outcomeDamage:
			if d, ok := nearest[l]; !ok || dist < d {
				nearest[l] = dist
			}
		case outcomeCollect:
			if d, ok := treasure[l]; !ok || dist < d {
				treasure[l] = dist
			}
		}
	}

	danger, threatened := nearest[lane]
	if threatened {
		if target, ok := a.safestNeighbor(lane, maxLane, nearest); ok {
			return in.With(laneIntent(lane, target))
		}
		if danger <= a.JumpLead && snap.Player.JumpsUsed == 0 {
			in = in.With(IntentJump)
		}
		return in
	}

	// Drift toward the closest collectible when its lane is clear.
	best, bestDist := lane, math.Inf(1)
	for l := -maxLane; l <= maxLane; l++ {
		d, ok := treasure[l]
		if !ok {
			continue
		}
		if _, bad := nearest[l]; bad {
			continue
		}
		if d < bestDist || (d == bestDist && absInt(l-lane) < absInt(best-lane)) {
			best, bestDist = l, d
		}
	}
	if best != lane {
		step := lane + sign(best-lane)
		if _, bad := nearest[step]; !bad {
			in = in.With(laneIntent(lane, step))
		}
	}
	return in
}

// safestNeighbor returns an adjacent lane with no hazard, preferring the
// one closer to the center.
func (a *Autopilot) safestNeighbor(lane, maxLane int, hazards map[int]float64) (int, bool) {
	candidates := []int{lane - 1, lane + 1}
	if lane < 0 {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}
	for _, c := range candidates {
		if c < -maxLane || c > maxLane {
			continue
		}
		if _, bad := hazards[c]; !bad {
			return c, true
		}
	}
	return lane, false
}

func laneIntent(from, to int) Intent {
	if to < from {
		return IntentLeft
	}
	return IntentRight
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
