package ecs

import "fmt"

// Entity is a stable handle to an entity. The lower 32 bits hold the slot
// index and the upper 32 bits hold the slot generation. A handle stays the
// same while components are added or removed; deleting the entity bumps the
// generation of its slot so the old handle is never alive again.
type Entity uint64

// NewEntity creates an Entity from a slot index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// entitySlot records where a live entity's components are stored.
type entitySlot struct {
	archetype  *Archetype
	row        uint32
	generation uint32
	alive      bool
}
