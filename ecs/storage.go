package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"unsafe"
)

// Storage is the main ECS storage. It owns the entity slots, every
// archetype and the singletons. Storage is not safe for concurrent use:
// exactly one system may touch it at a time.
type Storage struct {
	archetypes     map[uint32]*Archetype
	archetypeList  []*Archetype
	registry       *ComponentRegistry
	slots          []entitySlot
	freeSlots      []uint32
	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns every archetype in creation order.
// The returned slice must not be modified.
func (s *Storage) Archetypes() []*Archetype {
	return s.archetypeList
}

// GetArchetype returns the archetype storing e, or nil if e is not alive
func (s *Storage) GetArchetype(e Entity) *Archetype {
	slot, ok := s.slot(e)
	if !ok {
		return nil
	}
	return slot.archetype
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	for id := hashTypesToUint32(sorted); ; id++ {
		archetype, ok := s.archetypes[id]
		if !ok {
			return nil
		}
		if slices.Equal(archetype.types, sorted) {
			return archetype
		}
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	for {
		archetype, exists := s.archetypes[archetypeId]
		if !exists {
			break
		}
		if slices.Equal(archetype.types, types) {
			return archetype
		}
		// Hash collision, probe the next id.
		archetypeId++
	}

	archetype := NewArchetype(archetypeId, types, s.registry)
	s.archetypes[archetypeId] = archetype
	s.archetypeList = append(s.archetypeList, archetype)
	return archetype
}

// slot returns the live slot addressed by e.
func (s *Storage) slot(e Entity) (*entitySlot, bool) {
	idx := e.Index()
	if int(idx) >= len(s.slots) {
		return nil, false
	}
	slot := &s.slots[idx]
	if !slot.alive || slot.generation != e.Generation() {
		return nil, false
	}
	return slot, true
}

func (s *Storage) allocEntity() Entity {
	if n := len(s.freeSlots); n > 0 {
		idx := s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
		slot := &s.slots[idx]
		slot.alive = true
		return NewEntity(idx, slot.generation)
	}
	idx := uint32(len(s.slots))
	s.slots = append(s.slots, entitySlot{generation: 1, alive: true})
	return NewEntity(idx, 1)
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) Entity {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	entity := s.allocEntity()
	slot := &s.slots[entity.Index()]
	slot.archetype = archetype
	slot.row = archetype.spawn(entity, components)
	return entity
}

// Contains reports whether e refers to a live entity
func (s *Storage) Contains(e Entity) bool {
	_, ok := s.slot(e)
	return ok
}

// EntityCount returns the number of live entities
func (s *Storage) EntityCount() int {
	return len(s.slots) - len(s.freeSlots)
}

// Delete removes all data related to the entity. It reports whether the
// entity was alive.
func (s *Storage) Delete(e Entity) bool {
	slot, ok := s.slot(e)
	if !ok {
		return false
	}

	slot.archetype.delete(slot.row)
	slot.archetype = nil
	slot.alive = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	s.freeSlots = append(s.freeSlots, e.Index())
	return true
}

// AddComponents attaches components to e. Components whose type is already
// present replace the current value in place; new types move the entity to
// the matching archetype. The entity handle does not change.
func (s *Storage) AddComponents(e Entity, components ...any) error {
	slot, ok := s.slot(e)
	if !ok {
		return fmt.Errorf("add components to %s: %w", e, ErrEntityNotFound)
	}
	if len(components) == 0 {
		return nil
	}

	oldArchetype := slot.archetype
	var added []any
	for _, comp := range components {
		if oldArchetype.setComponent(slot.row, comp) {
			continue
		}
		added = append(added, comp)
	}
	if len(added) == 0 {
		return nil
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+len(added))
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, extractComponentTypes(added)...)
	sort.Sort(byTypeName(newTypes))

	newComponents := make([]any, 0, len(newTypes))
	for _, typ := range oldArchetype.types {
		newComponents = append(newComponents, oldArchetype.GetComponent(slot.row, typ))
	}
	newComponents = append(newComponents, added...)

	s.move(slot, e, newTypes, newComponents)
	return nil
}

// AddComponent attaches a single component to e
func (s *Storage) AddComponent(e Entity, component any) error {
	return s.AddComponents(e, component)
}

// RemoveComponent detaches the component of the given type from e.
// Removing the last component deletes the entity.
func (s *Storage) RemoveComponent(e Entity, compType reflect.Type) error {
	slot, ok := s.slot(e)
	if !ok {
		return fmt.Errorf("remove %s from %s: %w", compType, e, ErrEntityNotFound)
	}

	oldArchetype := slot.archetype
	if !oldArchetype.HasComponent(compType) {
		return fmt.Errorf("remove %s from %s: %w", compType, e, ErrComponentNotFound)
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		// Entity has no components left, delete it
		s.Delete(e)
		return nil
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(slot.row, typ))
	}

	s.move(slot, e, newTypes, components)
	return nil
}

// move copies components into the archetype for types and frees the old row.
func (s *Storage) move(slot *entitySlot, e Entity, types []reflect.Type, components []any) {
	newArchetype := s.archetypeFor(types)
	oldArchetype, oldRow := slot.archetype, slot.row

	// Spawn copies the component values before the old row is released.
	newRow := newArchetype.spawn(e, components)
	oldArchetype.delete(oldRow)

	slot.archetype = newArchetype
	slot.row = newRow
}

// GetComponent returns a pointer to the component for the given entity and
// component type, or nil when the entity is dead or lacks the component
func (s *Storage) GetComponent(e Entity, compType reflect.Type) any {
	slot, ok := s.slot(e)
	if !ok {
		return nil
	}
	return slot.archetype.GetComponent(slot.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(e Entity, compType reflect.Type) bool {
	slot, ok := s.slot(e)
	if !ok {
		return false
	}
	return slot.archetype.HasComponent(compType)
}

// Compact reorganizes every archetype to eliminate empty rows.
// Entity handles are unaffected.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypeList {
		for oldRow, newRow := range archetype.compact() {
			if oldRow == newRow {
				continue
			}
			e := archetype.entities[newRow]
			s.slots[e.Index()].row = uint32(newRow)
		}
	}
}

// componentType returns the value type of a component, dereferencing pointers.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType != nil && compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		if compType == nil {
			panic("components cannot be nil")
		}

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
			compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
			panic("components cannot be pointers, maps, channels, or functions")
		}

		for _, seen := range types {
			if seen == compType {
				panic("duplicate component type " + compType.String())
			}
		}
		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in all 4 bytes if on 64-bit system
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is implemented by anything that can look up a component
// by entity and type.
type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
}

// ReadComponent returns a typed pointer to the component of e, or nil
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	comp, _ := reader.GetComponent(e, reflect.TypeFor[T]()).(*T)
	return comp
}

// HasComponentOf reports whether e holds a component of type T
func HasComponentOf[T any](s *Storage, e Entity) bool {
	return s.HasComponent(e, reflect.TypeFor[T]())
}
