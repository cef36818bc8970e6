package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types.
// Rows are storage positions shared by every component column; entities
// records which entity owns each row.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []Entity
	count    int
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	// Initialize storage for each component type
	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn stores the components of entity and returns the row they landed in.
func (a *Archetype) spawn(entity Entity, components []any) uint32 {
	row := -1
	for _, comp := range components {
		idx := a.columnOf(componentType(comp))
		if idx == -1 {
			continue
		}
		pos := a.storages[idx].Append(comp)
		if row != -1 && pos != row {
			panic("archetype columns out of sync")
		}
		row = pos
	}
	if row < 0 {
		panic("archetype spawn stored no components")
	}

	for row >= len(a.entities) {
		a.entities = append(a.entities, 0)
	}
	a.entities[row] = entity
	a.count++
	return uint32(row)
}

func (a *Archetype) columnOf(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored
// in row, or nil if the archetype has no such column.
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx := a.columnOf(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(row))
}

// setComponent overwrites an existing component value in place.
func (a *Archetype) setComponent(row uint32, component any) bool {
	idx := a.columnOf(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(row), component)
}

// delete frees row in every column.
// Rows of other entities remain stable - the slot is simply marked as empty.
func (a *Archetype) delete(row uint32) {
	if int(row) >= len(a.entities) || a.entities[row] == 0 {
		return
	}
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	a.entities[row] = 0
	a.count--
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities stored in the archetype
func (a *Archetype) Len() int {
	return a.count
}

// compact reorganizes all columns to eliminate empty rows. The returned map
// translates old rows to new rows so the storage can update entity slots.
func (a *Archetype) compact() map[int]int {
	if len(a.storages) == 0 {
		return nil
	}

	// Columns are always filled in lockstep, so every column produces the
	// same mapping as the first one.
	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	entities := make([]Entity, len(indexMap))
	for oldRow, newRow := range indexMap {
		entities[newRow] = a.entities[oldRow]
	}
	a.entities = entities
	return indexMap
}

// Iter returns an iterator over the rows and entities stored in this
// archetype, in ascending row order.
func (a *Archetype) Iter() func(yield func(uint32, Entity) bool) {
	return func(yield func(uint32, Entity) bool) {
		if len(a.storages) == 0 {
			return
		}

		for row := range a.storages[0].Iter() {
			if !yield(uint32(row), a.entities[row]) {
				return
			}
		}
	}
}
