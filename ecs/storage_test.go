package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/ooftn2d/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			e := ecs.NewEntity(tt.index, tt.generation)
			assert.Equal(t, tt.index, e.Index())
			assert.Equal(t, tt.generation, e.Generation())
		})
	}
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.Entity(0), e)
	assert.True(t, storage.Contains(e))
	assert.Equal(t, 1, storage.EntityCount())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	pos := ecs.ReadComponent[Position](storage, e)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := storage.GetComponent(e, reflect.TypeOf(Name{})).(*Name)
	assert.Equal(t, "Test Entity", name.Value)

	assert.Nil(t, storage.GetComponent(e, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, e))
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})
	assert.True(t, storage.Delete(e))

	assert.False(t, storage.Contains(e))
	assert.Nil(t, storage.GetComponent(e, reflect.TypeOf(Position{})))
	assert.False(t, storage.Delete(e), "second delete is a no-op")
	assert.Equal(t, 0, storage.EntityCount())
}

func TestDeletedSlotReuseBumpsGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	storage.Delete(first)
	second := storage.Spawn(Position{X: 2})

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first.Generation(), second.Generation())
	assert.False(t, storage.Contains(first))
	assert.True(t, storage.Contains(second))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, second).X)
}

func TestAddComponentsKeepsHandle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(Position{X: 5, Y: 6})
	require.NoError(t, storage.AddComponents(e, Velocity{DX: 1}, Health{Current: 10, Max: 10}))

	assert.True(t, storage.Contains(e))
	assert.Equal(t, float32(5), ecs.ReadComponent[Position](storage, e).X)
	assert.Equal(t, float32(1), ecs.ReadComponent[Velocity](storage, e).DX)
	assert.Equal(t, 10, ecs.ReadComponent[Health](storage, e).Current)
	assert.Len(t, storage.GetArchetype(e).Types(), 3)
}

func TestAddComponentsReplacesExisting(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(Position{X: 5, Y: 6}, Score(1))
	archetype := storage.GetArchetype(e)

	require.NoError(t, storage.AddComponent(e, Score(99)))

	assert.Same(t, archetype, storage.GetArchetype(e))
	assert.Equal(t, Score(99), *ecs.ReadComponent[Score](storage, e))
}

func TestAddComponentsToDeletedEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(Position{})
	storage.Delete(e)

	err := storage.AddComponents(e, Velocity{})
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
}

func TestRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	e := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	require.NoError(t, storage.RemoveComponent(e, reflect.TypeOf(Velocity{})))

	assert.True(t, storage.Contains(e))
	assert.False(t, ecs.HasComponentOf[Velocity](storage, e))
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, e).X)

	err := storage.RemoveComponent(e, reflect.TypeOf(Velocity{}))
	assert.ErrorIs(t, err, ecs.ErrComponentNotFound)

	require.NoError(t, storage.RemoveComponent(e, reflect.TypeOf(Position{})))
	assert.False(t, storage.Contains(e), "removing the last component deletes the entity")
}

func TestMovedEntitiesLeaveOtherRowsIntact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})
	c := storage.Spawn(Position{X: 3})

	require.NoError(t, storage.AddComponent(b, Velocity{DX: 9}))

	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, a).X)
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, b).X)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 42})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := range 1000 {
		storage.Spawn(Position{X: float32(i)})
	}

	assert.Equal(t, float32(42), pos.X)
	pos.X = 7
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, first).X)
}

func TestCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	entities := make([]ecs.Entity, 10)
	for i := range entities {
		entities[i] = storage.Spawn(Position{X: float32(i)})
	}
	for i := 0; i < 10; i += 2 {
		storage.Delete(entities[i])
	}

	storage.Compact()

	for i := 1; i < 10; i += 2 {
		pos := ecs.ReadComponent[Position](storage, entities[i])
		require.NotNil(t, pos)
		assert.Equal(t, float32(i), pos.X)
	}
	assert.Equal(t, 5, storage.GetArchetype(entities[1]).Len())
}

func TestArchetypesInCreationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{})
	storage.Spawn(Velocity{})
	storage.Spawn(Position{}, Velocity{})

	archetypes := storage.Archetypes()
	require.Len(t, archetypes, 3)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(Position{})}, archetypes[0].Types())
	assert.Equal(t, []reflect.Type{reflect.TypeOf(Velocity{})}, archetypes[1].Types())
	assert.Len(t, archetypes[2].Types(), 2)

	assert.Same(t, archetypes[2], storage.GetArchetypeByTypes([]reflect.Type{
		reflect.TypeOf(Velocity{}), reflect.TypeOf(Position{}),
	}))
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Nil(t, ecs.GetSingleton[Health](storage))

	storage.AddSingleton(Health{Current: 3, Max: 5})
	assert.Equal(t, 3, ecs.GetSingleton[Health](storage).Current)

	shared := &Name{Value: "shared"}
	storage.AddSingleton(shared)
	assert.Same(t, shared, ecs.GetSingleton[Name](storage))

	single := ecs.NewSingleton[Health](storage)
	single.Get().Current = 4
	assert.Equal(t, 4, ecs.GetSingleton[Health](storage).Current)
}
