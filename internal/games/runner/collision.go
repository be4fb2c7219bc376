package runner

import (
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// hitGuard is the part of the player the resolver needs for damage.
type hitGuard interface {
	Invincible(now time.Duration) bool
	Hit(now time.Duration)
}

// collisionResult summarizes one resolver pass.
type collisionResult struct {
	consumed int
	damaged  bool
	letters  Letters // Letter indices collected this frame
}

// Resolver tests active entities against the player's pose.
type Resolver struct {
	cfg *config.RunnerConfig
}

// NewResolver creates a collision resolver.
func NewResolver(cfg *config.RunnerConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve consumes every active entity touching the player and queues the
// matching events. A nil pose skips the pass entirely.
func (r *Resolver) Resolve(store *Store, moves []move, pose *Pose, guard hitGuard, now time.Duration, immortal bool, q *EventQueue) collisionResult {
	var res collisionResult
	if pose == nil {
		return res
	}

	prev := make(map[EntityID]float64, len(moves))
	for _, m := range moves {
		prev[m.id] = m.prevZ
	}

	store.ForEach(func(e *Entity) {
		if !e.Active {
			return
		}
		prevZ, ok := prev[e.ID]
		if !ok {
			prevZ = e.Pos.Z
		}
		// The swept interval catches thin entities that jump over the
		// player in one large step.
		swept := core.NewSpan(prevZ, e.Pos.Z)
		b := e.behavior()

		switch b.outcome {
		case outcomeEnterShop:
			if !swept.Grow(r.cfg.Collision.PortalRadius).Contains(pose.Z) {
				return
			}
			r.consume(e, q, &res)
			q.Push(EnterShopEvent{})

		case outcomeDamage:
			if !r.inReach(e, swept, b, pose) {
				return
			}
			if !pose.Body().Overlaps(b.band(e, r.cfg)) {
				return
			}
			r.consume(e, q, &res)
			if immortal || guard.Invincible(now) {
				return
			}
			guard.Hit(now)
			res.damaged = true
			q.Push(DamageEvent{Source: e.Kind, Pos: e.Pos})
			q.Push(DamageFlashEvent{})

		case outcomeCollect:
			if !r.inReach(e, swept, b, pose) {
				return
			}
			if core.AbsF(e.Pos.Y-pose.Center()) >= r.cfg.Collision.CollectTolerance {
				return
			}
			r.consume(e, q, &res)
			if e.Kind == KindLetter {
				res.letters = res.letters.With(e.Letter)
				q.Push(LetterCollectedEvent{Index: e.Letter, Pos: e.Pos})
			} else {
				q.Push(GemCollectedEvent{Points: e.Points, Pos: e.Pos})
			}
		}
	})
	return res
}

// inReach applies the z-zone and lane tests.
func (r *Resolver) inReach(e *Entity, swept core.Span, b behavior, pose *Pose) bool {
	if !swept.Grow(r.cfg.Collision.ZHalfWidth).Contains(pose.Z) {
		return false
	}
	if b.laneBound && core.AbsF(e.Pos.X-pose.X) >= r.cfg.Collision.LaneTolerance {
		return false
	}
	return true
}

// consume deactivates e exactly once and requests a visual burst.
func (r *Resolver) consume(e *Entity, q *EventQueue, res *collisionResult) {
	e.Active = false
	res.consumed++
	q.Push(BurstEvent{Pos: e.Pos, Color: e.Color})
}
