package runner

import "time"

// PlayerView is the player's state as of a committed frame.
type PlayerView struct {
	Lane       int     `json:"lane"`
	X          float64 `json:"x"`
	Height     float64 `json:"height"`
	Velocity   float64 `json:"velocity"`
	JumpsUsed  int     `json:"jumps_used"`
	Invincible bool    `json:"invincible"`
}

// EntityView is an entity as of a committed frame.
type EntityView struct {
	ID     EntityID `json:"id"`
	Kind   string   `json:"kind"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Z      float64  `json:"z"`
	Active bool     `json:"active"`
	Color  string   `json:"color"`
	Letter int      `json:"letter,omitempty"`
	Points int      `json:"points,omitempty"`
}

// Snapshot is an immutable copy of a committed frame.
type Snapshot struct {
	Frame    uint64        `json:"frame"`
	Clock    time.Duration `json:"clock_ns"`
	Distance float64       `json:"distance"`
	Status   string        `json:"status"`
	Player   PlayerView    `json:"player"`
	Entities []Entity      `json:"-"`
}

// Views converts the entities to their serializable form.
func (s Snapshot) Views() []EntityView {
	out := make([]EntityView, 0, len(s.Entities))
	for _, e := range s.Entities {
		out = append(out, EntityView{
			ID:     e.ID,
			Kind:   e.Kind.String(),
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			Z:      e.Pos.Z,
			Active: e.Active,
			Color:  e.Color.String(),
			Letter: e.Letter,
			Points: e.Points,
		})
	}
	return out
}

// Snapshot returns the last committed frame. Safe for concurrent use.
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snap := w.committed
	snap.Entities = append([]Entity(nil), w.committed.Entities...)
	return snap
}

func (w *World) buildSnapshot(store *Store, status Status) Snapshot {
	p := w.player
	return Snapshot{
		Frame:    w.frame,
		Clock:    w.clock,
		Distance: w.distance,
		Status:   status.String(),
		Player: PlayerView{
			Lane:       p.Lane(),
			X:          p.Pose().X,
			Height:     p.Height(),
			Velocity:   p.Velocity(),
			JumpsUsed:  p.JumpsUsed(),
			Invincible: p.Invincible(w.clock),
		},
		Entities: store.Entities(),
	}
}
