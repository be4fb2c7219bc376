package runner

import (
	"fmt"

	"github.com/vovakirdan/lane-runner/internal/core"
)

// Kind identifies the variant of a world entity.
type Kind uint8

const (
	KindObstacle Kind = iota
	KindAlien
	KindMissile
	KindGem
	KindLetter
	KindShopPortal

	kindCount // sentinel, keep last
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindAlien:
		return "alien"
	case KindMissile:
		return "missile"
	case KindGem:
		return "gem"
	case KindLetter:
		return "letter"
	case KindShopPortal:
		return "portal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// EntityID is an opaque identifier, never reused within a world.
type EntityID uint64

// Entity is one spawned world object. Payload fields are only meaningful
// for the kinds noted next to them.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Pos      core.Vec3
	Active   bool
	Color    core.Color
	HasFired bool // Alien
	Points   int  // Gem
	Letter   int  // Letter: index into the target word
}

// behavior returns the per-kind behavior row for this entity.
func (e *Entity) behavior() behavior {
	return behaviors[e.Kind]
}

// Static reports whether the entity counts toward spawn spacing.
func (e *Entity) Static() bool {
	return e.behavior().static
}
