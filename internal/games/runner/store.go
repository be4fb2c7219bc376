package runner

// Store is the in-memory entity arena. Entities are kept in spawn order
// and removal always builds a fresh slice, so a caller iterating an older
// view never sees entries shift under it.
type Store struct {
	entities []Entity
	nextID   *EntityID // shared with clones so IDs are never reused
}

// NewStore creates an empty store.
func NewStore() *Store {
	var id EntityID
	return &Store{
		entities: make([]Entity, 0, 32),
		nextID:   &id,
	}
}

// Add appends an entity, assigning it a fresh ID, and returns that ID.
func (s *Store) Add(e Entity) EntityID {
	*s.nextID++
	e.ID = *s.nextID
	s.entities = append(s.entities, e)
	return e.ID
}

// RemoveWhere drops every entity matching pred and returns how many were removed.
func (s *Store) RemoveWhere(pred func(*Entity) bool) int {
	kept := make([]Entity, 0, len(s.entities))
	for i := range s.entities {
		if pred(&s.entities[i]) {
			continue
		}
		kept = append(kept, s.entities[i])
	}
	removed := len(s.entities) - len(kept)
	s.entities = kept
	return removed
}

// ForEach calls fn for every entity in spawn order. fn may mutate the
// entity but must not add or remove entities.
func (s *Store) ForEach(fn func(*Entity)) {
	for i := range s.entities {
		fn(&s.entities[i])
	}
}

// Clear removes all entities. IDs keep counting up.
func (s *Store) Clear() {
	s.entities = s.entities[:0:0]
}

// Len returns the number of stored entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Get returns a copy of the entity with the given ID.
func (s *Store) Get(id EntityID) (Entity, bool) {
	for _, e := range s.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// FurthestStaticZ returns the smallest z among static entities.
// ok is false when no static entity exists.
func (s *Store) FurthestStaticZ() (z float64, ok bool) {
	for i := range s.entities {
		e := &s.entities[i]
		if !e.Static() {
			continue
		}
		if !ok || e.Pos.Z < z {
			z = e.Pos.Z
			ok = true
		}
	}
	return z, ok
}

// CountKind returns how many entities of kind k are stored.
func (s *Store) CountKind(k Kind, activeOnly bool) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == k && (!activeOnly || e.Active) {
			n++
		}
	}
	return n
}

// Clone returns an independent copy sharing the ID sequence.
func (s *Store) Clone() *Store {
	entities := make([]Entity, len(s.entities), len(s.entities)+8)
	copy(entities, s.entities)
	return &Store{entities: entities, nextID: s.nextID}
}

// Entities returns a copy of the stored entities.
func (s *Store) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}
