package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes an exported field reachable from a component type.
// Index is the field index path from the component root.
type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index []int
}

// Kind returns the kind of the field's type.
func (f FieldInfo) Kind() reflect.Kind {
	return f.Type.Kind()
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields returns the exported direct fields of t. Non-struct types have no
// fields.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:  field.Name,
				Type:  field.Type,
				Index: []int{i},
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

// Nested returns the fields of a struct field with index paths extended
// from parent.
func (rc *ReflectionCache) Nested(parent FieldInfo) []FieldInfo {
	direct := rc.Fields(parent.Type)
	nested := make([]FieldInfo, len(direct))
	for i, f := range direct {
		nested[i] = FieldInfo{
			Name:  f.Name,
			Type:  f.Type,
			Index: append(append([]int(nil), parent.Index...), f.Index...),
		}
	}
	return nested
}

var globalReflectionCache = NewReflectionCache()
