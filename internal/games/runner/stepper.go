package runner

import (
	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// move records where an entity started this frame, for swept collision.
type move struct {
	id    EntityID
	prevZ float64
}

// Stepper advances entities toward the player and retires the ones left
// behind the camera.
type Stepper struct {
	cfg *config.RunnerConfig
}

// NewStepper creates a stepper.
func NewStepper(cfg *config.RunnerConfig) *Stepper {
	return &Stepper{cfg: cfg}
}

// Advance moves every entity by speed*dt plus its kind's own velocity and
// lets armed aliens fire. Missiles fired this frame are appended to the
// store and included in the returned moves so they collide immediately.
func (st *Stepper) Advance(store *Store, speed, dt float64) []move {
	if speed < 0 {
		speed = 0
	}
	scroll := speed * dt

	moves := make([]move, 0, store.Len()+2)
	var fired []Entity

	store.ForEach(func(e *Entity) {
		moves = append(moves, move{id: e.ID, prevZ: e.Pos.Z})

		// Inactive entities keep moving so their last frame stays consistent.
		e.Pos.Z += scroll + e.behavior().extraSpeed(st.cfg)*dt

		if e.Kind == KindAlien && e.Active && !e.HasFired && e.Pos.Z > st.cfg.World.AlienFireZ {
			e.HasFired = true
			fired = append(fired, Entity{
				Kind:   KindMissile,
				Pos:    core.Vec3{X: e.Pos.X, Y: e.Pos.Y, Z: e.Pos.Z},
				Active: true,
				Color:  behaviors[KindMissile].color,
			})
		}
	})

	for _, m := range fired {
		id := store.Add(m)
		moves = append(moves, move{id: id, prevZ: m.Pos.Z})
	}
	return moves
}

// Cull removes entities past the removal line and consumed portals.
// It returns the number removed.
func (st *Stepper) Cull(store *Store) int {
	limit := st.cfg.World.RemoveDistance
	return store.RemoveWhere(func(e *Entity) bool {
		if e.Pos.Z > limit {
			return true
		}
		return e.Kind == KindShopPortal && !e.Active
	})
}
