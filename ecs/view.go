package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldMode uint8

const (
	fieldRequired fieldMode = iota
	fieldOptional
	fieldWithout
	fieldEntity
)

var entityType = reflect.TypeFor[Entity]()

type viewField struct {
	typ    reflect.Type
	offset uintptr
	mode   fieldMode
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct whose fields are pointers to component types:
//
//   - embedded pointer fields are always required
//   - named pointer fields are required unless tagged
//   - `ecs:"optional"` marks a named field that may be nil
//   - `ecs:"without"` excludes entities holding that component; the field is always nil
//   - a field of type Entity (embedded or named) receives the entity handle
//
// Entities are visited archetype by archetype in archetype creation order
// and row by row inside each archetype, so iteration order is deterministic
// for a given sequence of storage operations.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityType {
			fields = append(fields, viewField{typ: entityType, offset: field.Offset, mode: fieldEntity})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or ecs.Entity")
		}

		mode := fieldRequired
		if tag := field.Tag.Get("ecs"); tag != "" {
			if field.Anonymous {
				panic("ecs tags are not supported on embedded fields")
			}
			switch tag {
			case "optional":
				mode = fieldOptional
			case "without":
				mode = fieldWithout
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" and \"without\" are supported)")
			}
		}

		fields = append(fields, viewField{
			typ:    field.Type.Elem(),
			offset: field.Offset,
			mode:   mode,
		})
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is dead, lacks a required component or holds an
// excluded one. Optional components are set to nil if not present
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	slot, ok := v.storage.slot(e)
	if !ok || !v.matchesArchetype(slot.archetype) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), slot.archetype, e, slot.row, v.buildStorageIndices(slot.archetype))
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't match the view
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Matches reports whether e currently matches the view
func (v *View[T]) Matches(e Entity) bool {
	slot, ok := v.storage.slot(e)
	return ok && v.matchesArchetype(slot.archetype)
}

// matchesArchetype checks required components are present and excluded
// components absent. Optional components are not checked.
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, f := range v.fields {
		switch f.mode {
		case fieldRequired:
			if !archetype.HasComponent(f.typ) {
				return false
			}
		case fieldWithout:
			if archetype.HasComponent(f.typ) {
				return false
			}
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.fields))
	for i, f := range v.fields {
		storageIndices[i] = -1
		if f.mode == fieldRequired || f.mode == fieldOptional {
			storageIndices[i] = archetype.columnOf(f.typ)
		}
	}
	return storageIndices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, e Entity, row uint32, storageIndices []int) bool {
	for i, f := range v.fields {
		fieldPtr := unsafe.Add(resultPtr, f.offset)

		switch f.mode {
		case fieldEntity:
			*(*Entity)(fieldPtr) = e
			continue
		case fieldWithout:
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		storageIdx := storageIndices[i]
		var component any
		if storageIdx != -1 {
			component = archetype.storages[storageIdx].Get(int(row))
		}
		if component == nil {
			if f.mode == fieldOptional {
				*(*unsafe.Pointer)(fieldPtr) = nil
				continue
			}
			return false
		}

		// Extract the data pointer from the interface value.
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		if archetype.Len() == 0 {
			return
		}

		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for row, entity := range archetype.Iter() {
			if !v.populateResult(resultPtr, archetype, entity, row, storageIndices) {
				continue
			}
			if !yield(entity, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities matching the view.
// The iterator yields (Entity, T) pairs where T is the populated view struct.
// The storage must not be structurally modified while iterating; queue
// changes on a Commands buffer instead.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for _, archetype := range v.storage.archetypeList {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for e, item := range v.iterArchetype(archetype) {
				if !yield(e, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
// This is useful when you only care about the component data, not which entity it belongs to
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the view
func (v *View[T]) Count() int {
	count := 0
	for range v.Iter() {
		count++
	}
	return count
}

// Spawn creates a new entity with components extracted from the view struct.
// Nil optional fields are skipped; excluded and Entity fields are ignored.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		if f.mode == fieldEntity || f.mode == fieldWithout {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil {
			if f.mode == fieldRequired {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(f.typ, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
