package render

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/ooftn2d/ecs"
)

// entitySet records the entities whose GPU-side state is current.
type entitySet struct {
	m *intmap.Map[ecs.Entity, struct{}]
}

func newEntitySet(capacity int) entitySet {
	return entitySet{m: intmap.New[ecs.Entity, struct{}](capacity)}
}

func (s entitySet) Has(e ecs.Entity) bool {
	_, ok := s.m.Get(e)
	return ok
}

func (s entitySet) Add(e ecs.Entity) {
	s.m.Put(e, struct{}{})
}

func (s entitySet) Len() int {
	return s.m.Len()
}

func (s entitySet) Clear() {
	s.m.Clear()
}

// retain drops every entity for which keep returns false and returns the
// number of entities dropped.
func (s entitySet) retain(keep func(ecs.Entity) bool) int {
	var dead []ecs.Entity
	s.m.ForEach(func(e ecs.Entity, _ struct{}) bool {
		if !keep(e) {
			dead = append(dead, e)
		}
		return true
	})
	for _, e := range dead {
		s.m.Del(e)
	}
	return len(dead)
}
