package assets

import (
	"fmt"
	"reflect"
	"sync"
)

// Manager owns every loaded asset, grouped by asset type, and the
// FileReader used to query on-disk timestamps for hot reload.
//
// A Manager is stored in the ECS as a pointer singleton and is safe for
// concurrent use.
type Manager struct {
	mu         sync.RWMutex
	registries map[reflect.Type]any
	reader     FileReader
}

// registry stores the assets of one type. Index 0 is never used.
type registry[T any] struct {
	items []T
}

// NewManager creates an empty asset manager. A nil reader is replaced by
// NopFileReader, which disables hot reload.
func NewManager(reader FileReader) *Manager {
	if reader == nil {
		reader = NopFileReader{}
	}
	return &Manager{
		registries: make(map[reflect.Type]any),
		reader:     reader,
	}
}

// FileReader returns the reader used for timestamp queries.
func (m *Manager) FileReader() FileReader {
	return m.reader
}

func registryFor[T any](m *Manager, create bool) *registry[T] {
	typ := reflect.TypeFor[T]()
	if r, ok := m.registries[typ]; ok {
		return r.(*registry[T])
	}
	if !create {
		return nil
	}
	r := &registry[T]{}
	m.registries[typ] = r
	return r
}

// Register stores value and returns a Ref to it.
func Register[T any](m *Manager, value T) Ref[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := registryFor[T](m, true)
	r.items = append(r.items, value)
	return Ref[T]{index: uint32(len(r.items))}
}

// Replace overwrites the asset behind ref. It returns false if ref does not
// point at a registered asset.
func Replace[T any](m *Manager, ref Ref[T], value T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := registryFor[T](m, false)
	if r == nil || ref.index == 0 || int(ref.index) > len(r.items) {
		return false
	}
	r.items[ref.index-1] = value
	return true
}

// Get returns the asset behind ref.
func Get[T any](m *Manager, ref Ref[T]) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var zero T
	r := registryFor[T](m, false)
	if r == nil || ref.index == 0 || int(ref.index) > len(r.items) {
		return zero, false
	}
	return r.items[ref.index-1], true
}

// MustGet is like Get but panics when ref is invalid. Holding a Ref that
// the manager does not know is a programming error.
func MustGet[T any](m *Manager, ref Ref[T]) T {
	value, ok := Get(m, ref)
	if !ok {
		panic(fmt.Sprintf("assets: invalid reference %s", ref))
	}
	return value
}

// Len returns the number of registered assets of type T.
func Len[T any](m *Manager) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r := registryFor[T](m, false)
	if r == nil {
		return 0
	}
	return len(r.items)
}
