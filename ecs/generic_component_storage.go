package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Registering the same type twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether the component type has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage is a generic implementation of iComponentStorage.
// It stores components of a specific type `T` in fixed-size blocks so
// pointers handed out by Get stay valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
}

func locate(index int) (block int, slot int) {
	return index / genericBlockSize, index % genericBlockSize
}

func asComponent[T any](item any) (T, bool) {
	if ptr, ok := item.(*T); ok && ptr != nil {
		return *ptr, true
	}
	if val, ok := item.(T); ok {
		return val, true
	}
	var zero T
	return zero, false
}

// Append adds a component to storage and returns its index.
// Freed slots are reused, most recently freed first.
func (cs *genericComponentStorage[T]) Append(item any) int {
	value, ok := asComponent[T](item)
	if !ok {
		return -1 // Invalid type
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	blockIdx, slotIdx := locate(index)
	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, new([genericBlockSize]bool))
	}

	cs.blocks[blockIdx][slotIdx] = value
	cs.filled[blockIdx][slotIdx] = true
	return index
}

// Set overwrites the component stored at index.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if !cs.Has(index) {
		return false
	}
	value, ok := asComponent[T](item)
	if !ok {
		return false
	}
	blockIdx, slotIdx := locate(index)
	cs.blocks[blockIdx][slotIdx] = value
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	blockIdx, slotIdx := locate(index)
	return &cs.blocks[blockIdx][slotIdx]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	blockIdx, slotIdx := locate(index)
	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero // Zero out the value
	cs.freeSlots = append(cs.freeSlots, index)
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	blockIdx, slotIdx := locate(index)
	if blockIdx >= len(cs.filled) {
		return false
	}
	return cs.filled[blockIdx][slotIdx]
}

// Compact reorganizes component storage to remove empty slots.
// The returned map translates old indices to new ones.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)

	total := cs.nextIndex - len(cs.freeSlots)
	if total <= 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (total + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numBlocks)
	newFilled := make([]*[genericBlockSize]bool, numBlocks)
	for i := range numBlocks {
		newBlocks[i] = new([genericBlockSize]T)
		newFilled[i] = new([genericBlockSize]bool)
	}

	writePos := 0
	for readIdx := range cs.Iter() {
		rb, rs := locate(readIdx)
		wb, ws := locate(writePos)
		newBlocks[wb][ws] = cs.blocks[rb][rs]
		newFilled[wb][ws] = true
		indexMap[readIdx] = writePos
		writePos++
	}

	cs.blocks = newBlocks
	cs.filled = newFilled
	cs.freeSlots = nil
	cs.nextIndex = writePos

	return indexMap
}

// Iter yields the indices of every filled slot in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if !cs.Has(i) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
