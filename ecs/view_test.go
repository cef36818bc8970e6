package ecs_test

import (
	"testing"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		*Position
		*Score
	}](storage)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(e))
	assert.False(t, view.Matches(e))
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	with := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	without := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	assert.NotNil(t, view.Get(with).Velocity)
	assert.Nil(t, view.Get(without).Velocity)
	assert.Equal(t, 2, view.Count())
}

func TestViewWithout(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	plain := storage.Spawn(Position{X: 1})
	frozen := storage.Spawn(Position{X: 2}, Frozen{})

	view := ecs.NewView[struct {
		ecs.Entity
		*Position
		Frozen *Frozen `ecs:"without"`
	}](storage)

	var seen []ecs.Entity
	for e, item := range view.Iter() {
		assert.Nil(t, item.Frozen)
		assert.Equal(t, e, item.Entity)
		seen = append(seen, e)
	}
	assert.Equal(t, []ecs.Entity{plain}, seen)
	assert.Nil(t, view.Get(frozen))
}

func TestViewNamedEntityField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct {
		Id ecs.Entity
		*Position
	}](storage)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, e, item.Id)
}

func TestViewComponentMutation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(&Position{X: 1, Y: 1}, &Velocity{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(e)
	item.Position.X = 100
	item.Velocity.DY = 10

	assert.Equal(t, float32(100), ecs.ReadComponent[Position](storage, e).X)
	assert.Equal(t, float32(10), ecs.ReadComponent[Velocity](storage, e).DY)
}

func TestViewIterationOrderIsDeterministic(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var want []ecs.Entity
	for i := range 5 {
		want = append(want, storage.Spawn(Position{X: float32(i)}))
	}
	// A second archetype is visited after the first one.
	later := storage.Spawn(Position{X: 10}, Velocity{})
	want = append(want, later)

	view := ecs.NewView[struct{ *Position }](storage)
	for range 3 {
		var got []ecs.Entity
		for e := range view.Iter() {
			got = append(got, e)
		}
		assert.Equal(t, want, got)
	}
}

func TestViewDeadEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	e := storage.Spawn(Position{})
	storage.Delete(e)

	view := ecs.NewView[struct{ *Position }](storage)
	assert.Nil(t, view.Get(e))
	assert.Nil(t, view.Get(ecs.NewEntity(9999, 1)))
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	e := view.Spawn(struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}{Position: &Position{X: 3}})

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, e).X)
	assert.False(t, ecs.HasComponentOf[Velocity](storage, e))
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}
